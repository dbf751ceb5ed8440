package types

import (
	"fmt"
	"strings"
	"time"
)

// SourceFile is one unit of scan input: a path, its full text, and the
// language tag the classifier derived from the path. The engine never
// mutates or persists a SourceFile; callers supply a fresh set per scan.
type SourceFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// FileRole is the classifier's coarse assignment of what a file is for.
// Role-gated rules (manifest checks, UI anti-patterns) apply only to files
// carrying the matching role.
type FileRole string

const (
	RoleSource    FileRole = "source"
	RoleComponent FileRole = "component"
	RoleManifest  FileRole = "manifest"
)

// IsValid checks if the file role value is valid
func (r FileRole) IsValid() bool {
	switch r {
	case RoleSource, RoleComponent, RoleManifest:
		return true
	}
	return false
}

// Finding is one reported issue instance tied to a rule, file, and line.
// It is created exactly once by one category agent and is immutable
// afterward.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	FilePath    string   `json:"file_path"`
	LineNumber  int      `json:"line_number"` // 1-based
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remediation string   `json:"remediation"`
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
}

// Validate checks if the finding has valid field values
func (f *Finding) Validate() error {
	if strings.TrimSpace(f.RuleID) == "" {
		return fmt.Errorf("rule_id is required")
	}
	if strings.TrimSpace(f.FilePath) == "" {
		return fmt.Errorf("file_path is required")
	}
	if f.LineNumber < 1 {
		return fmt.Errorf("line_number must be 1-based (got %d)", f.LineNumber)
	}
	if !f.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", f.Severity)
	}
	if !f.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", f.Category)
	}
	return nil
}

// Key returns the identity used for deduplication. Exactly one finding may
// exist per key in a report.
func (f *Finding) Key() FindingKey {
	return FindingKey{RuleID: f.RuleID, FilePath: f.FilePath, LineNumber: f.LineNumber}
}

// FindingKey is the (rule, file, line) triple identifying a unique finding.
type FindingKey struct {
	RuleID     string
	FilePath   string
	LineNumber int
}

// Decision is the binary deployment verdict derived from the score plus the
// error-count gate.
type Decision string

const (
	DecisionGo   Decision = "GO"
	DecisionNoGo Decision = "NO-GO"
)

// IsValid checks if the decision value is valid
func (d Decision) IsValid() bool {
	switch d {
	case DecisionGo, DecisionNoGo:
		return true
	}
	return false
}

// AuditReport is the result of one scan call: deduplicated findings,
// per-severity counts, the weighted readiness score, and the GO/NO-GO
// decision. It is a plain serializable value with no behavior attached to
// any external resource.
type AuditReport struct {
	ID           string        `json:"id"`
	Findings     []Finding     `json:"findings"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	InfoCount    int           `json:"info_count"`
	Score        int           `json:"score"` // clamped to [0,100]
	Decision     Decision      `json:"decision"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Duration     time.Duration `json:"duration"`

	// AgentErrors marks agents whose evaluation faulted. Their findings are
	// absent; every other agent's findings are intact.
	AgentErrors []string `json:"agent_errors,omitempty"`
}

// TotalFindings returns the number of deduplicated findings in the report.
func (r *AuditReport) TotalFindings() int {
	return len(r.Findings)
}

// CountFor returns the per-severity count recorded in the report.
func (r *AuditReport) CountFor(s Severity) int {
	switch s {
	case SeverityError:
		return r.ErrorCount
	case SeverityWarning:
		return r.WarningCount
	case SeverityInfo:
		return r.InfoCount
	default:
		return 0
	}
}

// Validate checks if the report has valid field values
func (r *AuditReport) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("score must be within [0,100] (got %d)", r.Score)
	}
	if !r.Decision.IsValid() {
		return fmt.Errorf("invalid decision: %s", r.Decision)
	}
	counts := map[Severity]int{}
	for i := range r.Findings {
		f := &r.Findings[i]
		if err := f.Validate(); err != nil {
			return fmt.Errorf("finding %d: %w", i, err)
		}
		counts[f.Severity]++
	}
	if counts[SeverityError] != r.ErrorCount ||
		counts[SeverityWarning] != r.WarningCount ||
		counts[SeverityInfo] != r.InfoCount {
		return fmt.Errorf("severity counts do not match findings")
	}
	seen := make(map[FindingKey]struct{}, len(r.Findings))
	for i := range r.Findings {
		key := r.Findings[i].Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate finding for %s at %s:%d", key.RuleID, key.FilePath, key.LineNumber)
		}
		seen[key] = struct{}{}
	}
	return nil
}
