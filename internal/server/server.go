// Package server exposes the audit engine over HTTP: submit a file set,
// get back the report. The server is stateless — every request is one
// independent scan call and nothing is persisted between them.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/princessjainn/Rodgers-PS1/internal/audit"
	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// API serves the audit engine.
type API struct {
	router  *chi.Mux
	logger  zerolog.Logger
	server  *http.Server
	auditor *audit.Auditor
	cfg     config.ServerConfig
}

// auditRequest is the POST /api/v1/audit body.
type auditRequest struct {
	Files []types.SourceFile `json:"files"`
}

// ruleInfo is the catalog entry exposed by GET /api/v1/rules.
type ruleInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Severity    types.Severity `json:"severity"`
	Category    types.Category `json:"category"`
	Description string         `json:"description"`
	Remediation string         `json:"remediation"`
	Extensions  []string       `json:"extensions"`
}

// New builds the API around an auditor.
func New(auditor *audit.Auditor, cfg config.ServerConfig, logger zerolog.Logger) *API {
	api := &API{
		logger:  logger,
		auditor: auditor,
		cfg:     cfg,
	}

	router := chi.NewRouter()
	router.Use(requestLogger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/audit", api.handleAudit)
		r.Get("/rules", api.handleRules)
	})
	router.Get("/healthz", api.handleHealth)

	api.router = router
	api.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}
	return api
}

// Handler exposes the router, mainly for httptest.
func (a *API) Handler() http.Handler { return a.router }

// Start runs the server until an error or SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func (a *API) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		a.logger.Info().Str("addr", a.server.Addr).Msg("starting server")
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		a.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Error().Err(err).Msg("graceful shutdown failed")
			return a.server.Close()
		}
	}
	return nil
}

func (a *API) handleAudit(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, a.cfg.MaxRequestBytes)

	var req auditRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Files) == 0 {
		writeError(w, http.StatusBadRequest, "files is required")
		return
	}
	for i, f := range req.Files {
		if f.Path == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("files[%d].path is required", i))
			return
		}
	}

	report := a.auditor.Run(r.Context(), req.Files)
	writeJSON(w, http.StatusOK, report)
}

func (a *API) handleRules(w http.ResponseWriter, r *http.Request) {
	all := a.auditor.Registry().All()
	out := make([]ruleInfo, 0, len(all))
	for _, rule := range all {
		out = append(out, ruleInfo{
			ID:          rule.ID,
			Title:       rule.Title,
			Severity:    rule.Severity,
			Category:    rule.Category,
			Description: rule.Description,
			Remediation: rule.Remediation,
			Extensions:  rule.Extensions,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger attaches request fields to the logger and logs each call.
func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			reqLogger.Debug().Msg("request")

			ctx := reqLogger.WithContext(req.Context())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
