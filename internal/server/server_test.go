package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princessjainn/Rodgers-PS1/internal/audit"
	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/server"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

func newAPI(t *testing.T) *server.API {
	t.Helper()
	reg, err := rules.Default()
	require.NoError(t, err)
	auditor := audit.New(reg, zerolog.Nop())
	return server.New(auditor, config.Default().Server, zerolog.Nop())
}

func TestAuditEndpoint(t *testing.T) {
	api := newAPI(t)

	body, err := json.Marshal(map[string]any{
		"files": []map[string]string{
			{"path": "app.js", "content": "eval(payload);\n"},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit", bytes.NewReader(body))
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report types.AuditReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, types.DecisionNoGo, report.Decision)
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "SEC-002", report.Findings[0].RuleID)
}

func TestAuditEndpointRejectsBadRequests(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "nope"},
		{"no files", `{"files": []}`},
		{"missing path", `{"files": [{"content": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/audit", bytes.NewReader([]byte(tt.body)))
			api.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRulesEndpoint(t *testing.T) {
	api := newAPI(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var catalog []struct {
		ID       string `json:"id"`
		Severity string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.GreaterOrEqual(t, len(catalog), 16)
	assert.Equal(t, "SEC-001", catalog[0].ID)
}

func TestHealthz(t *testing.T) {
	api := newAPI(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	api.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
