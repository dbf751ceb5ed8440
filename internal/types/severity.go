package types

import (
	"fmt"
	"strings"
)

// Severity is the risk tier assigned to a rule and every finding it produces.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Weight returns the score deduction one finding of this severity incurs.
func (s Severity) Weight() int {
	switch s {
	case SeverityError:
		return 25
	case SeverityWarning:
		return 10
	case SeverityInfo:
		return 2
	default:
		return 0
	}
}

// Rank returns the display ordering for this severity: errors first,
// then warnings, then info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// ParseSeverity converts a string into a Severity, accepting any casing.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToUpper(s)) {
	case SeverityError:
		return SeverityError, nil
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityInfo:
		return SeverityInfo, nil
	}
	return "", fmt.Errorf("invalid severity: %q", s)
}

// Severities returns all valid severities in rank order.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}

// Category identifies which detection domain produced a rule or finding.
// The set is closed: every rule belongs to exactly one category, and the
// audit fans out one agent per category.
type Category string

const (
	CategorySecurity     Category = "security"
	CategoryCompliance   Category = "compliance"
	CategoryArchitecture Category = "architecture"
	CategoryDependency   Category = "dependency"
	CategoryAIRisk       Category = "ai-risk"
)

// IsValid checks if the category value is valid
func (c Category) IsValid() bool {
	switch c {
	case CategorySecurity, CategoryCompliance, CategoryArchitecture, CategoryDependency, CategoryAIRisk:
		return true
	}
	return false
}

// Categories returns all valid categories in canonical order. This order is
// the dedup tie-break used when two agents emit the same finding key; it
// carries no other meaning.
func Categories() []Category {
	return []Category{
		CategorySecurity,
		CategoryCompliance,
		CategoryArchitecture,
		CategoryDependency,
		CategoryAIRisk,
	}
}
