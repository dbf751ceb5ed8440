package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSeverityIsValid(t *testing.T) {
	for _, s := range Severities() {
		if !s.IsValid() {
			t.Errorf("severity %q should be valid", s)
		}
	}
	if Severity("CRITICAL").IsValid() {
		t.Error("CRITICAL should not be a valid severity")
	}
	if Severity("").IsValid() {
		t.Error("empty severity should not be valid")
	}
}

func TestSeverityWeight(t *testing.T) {
	cases := map[Severity]int{
		SeverityError:   25,
		SeverityWarning: 10,
		SeverityInfo:    2,
	}
	for sev, want := range cases {
		if got := sev.Weight(); got != want {
			t.Errorf("%s weight: got %d, want %d", sev, got, want)
		}
	}
	if got := Severity("bogus").Weight(); got != 0 {
		t.Errorf("unknown severity weight should be 0, got %d", got)
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	if !(SeverityError.Rank() < SeverityWarning.Rank() && SeverityWarning.Rank() < SeverityInfo.Rank()) {
		t.Error("rank must order errors before warnings before info")
	}
}

func TestParseSeverity(t *testing.T) {
	for _, input := range []string{"error", "ERROR", "Error"} {
		sev, err := ParseSeverity(input)
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", input, err)
		}
		if sev != SeverityError {
			t.Errorf("ParseSeverity(%q): got %s, want %s", input, sev, SeverityError)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("ParseSeverity should reject unknown severities")
	}
}

func TestCategoriesCanonicalOrder(t *testing.T) {
	want := []Category{
		CategorySecurity,
		CategoryCompliance,
		CategoryArchitecture,
		CategoryDependency,
		CategoryAIRisk,
	}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: got %s, want %s", i, got[i], want[i])
		}
		if !got[i].IsValid() {
			t.Errorf("category %q should be valid", got[i])
		}
	}
	if Category("quality").IsValid() {
		t.Error("quality should not be a valid category")
	}
}

func TestFindingValidate(t *testing.T) {
	valid := Finding{
		RuleID:      "SEC-002",
		FilePath:    "src/app.js",
		LineNumber:  3,
		Title:       "Dynamic code execution",
		Description: "eval() executes arbitrary strings as code",
		Remediation: "Replace eval with JSON.parse or a dispatch table",
		Severity:    SeverityError,
		Category:    CategorySecurity,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid finding rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(f *Finding)
	}{
		{"missing rule id", func(f *Finding) { f.RuleID = " " }},
		{"missing file path", func(f *Finding) { f.FilePath = "" }},
		{"zero line number", func(f *Finding) { f.LineNumber = 0 }},
		{"negative line number", func(f *Finding) { f.LineNumber = -4 }},
		{"bad severity", func(f *Finding) { f.Severity = "SEVERE" }},
		{"bad category", func(f *Finding) { f.Category = "misc" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			tc.mutate(&f)
			if err := f.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestFindingKeyIdentity(t *testing.T) {
	a := Finding{RuleID: "SEC-001", FilePath: "a.js", LineNumber: 10}
	b := Finding{RuleID: "SEC-001", FilePath: "a.js", LineNumber: 10, Title: "different title"}
	if a.Key() != b.Key() {
		t.Error("findings differing only in non-key fields must share a key")
	}
	c := Finding{RuleID: "SEC-001", FilePath: "a.js", LineNumber: 11}
	if a.Key() == c.Key() {
		t.Error("different lines must produce different keys")
	}
}

func TestAuditReportValidate(t *testing.T) {
	report := AuditReport{
		ID: "r-1",
		Findings: []Finding{
			{
				RuleID: "SEC-002", FilePath: "a.js", LineNumber: 1,
				Title: "t", Description: "d", Remediation: "r",
				Severity: SeverityError, Category: CategorySecurity,
			},
			{
				RuleID: "CMP-002", FilePath: "a.js", LineNumber: 2,
				Title: "t", Description: "d", Remediation: "r",
				Severity: SeverityInfo, Category: CategoryCompliance,
			},
		},
		ErrorCount:  1,
		InfoCount:   1,
		Score:       73,
		Decision:    DecisionNoGo,
		GeneratedAt: time.Now().UTC(),
	}
	if err := report.Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	t.Run("score out of range", func(t *testing.T) {
		bad := report
		bad.Score = 101
		if err := bad.Validate(); err == nil {
			t.Error("expected error for score > 100")
		}
	})

	t.Run("count mismatch", func(t *testing.T) {
		bad := report
		bad.ErrorCount = 2
		if err := bad.Validate(); err == nil {
			t.Error("expected error for count mismatch")
		}
	})

	t.Run("duplicate key", func(t *testing.T) {
		bad := report
		bad.Findings = append([]Finding{}, report.Findings...)
		bad.Findings = append(bad.Findings, report.Findings[0])
		bad.ErrorCount = 2
		if err := bad.Validate(); err == nil {
			t.Error("expected error for duplicate finding key")
		}
	})
}

func TestAuditReportCountFor(t *testing.T) {
	r := AuditReport{ErrorCount: 2, WarningCount: 5, InfoCount: 9}
	if r.CountFor(SeverityError) != 2 || r.CountFor(SeverityWarning) != 5 || r.CountFor(SeverityInfo) != 9 {
		t.Error("CountFor must return the per-severity fields")
	}
	if r.CountFor("bogus") != 0 {
		t.Error("CountFor of unknown severity must be 0")
	}
}

// Reports travel over the HTTP API and into files; the JSON shape is part
// of the contract.
func TestAuditReportJSONRoundTrip(t *testing.T) {
	in := AuditReport{
		ID: "3e9d2c1a",
		Findings: []Finding{{
			RuleID: "DEP-001", FilePath: "package.json", LineNumber: 7,
			Title: "Blacklisted dependency", Description: "d", Remediation: "r",
			Severity: SeverityError, Category: CategoryDependency,
		}},
		ErrorCount:  1,
		Score:       75,
		Decision:    DecisionNoGo,
		GeneratedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		AgentErrors: []string{"ai-risk: boom"},
	}
	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out AuditReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Findings[0].RuleID != "DEP-001" || out.Decision != DecisionNoGo || out.Score != 75 {
		t.Errorf("round trip lost data: %+v", out)
	}
	if len(out.AgentErrors) != 1 {
		t.Errorf("agent errors lost: %+v", out.AgentErrors)
	}
}
