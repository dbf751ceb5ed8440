// Package rules defines the detection rule model and the single registry
// every scan surface consumes. A rule is declarative data: metadata plus a
// matcher (textual pattern, structural predicate, file metric, or manifest
// check). Rules are immutable once registered and carry no evaluation
// state, so one registry is safely shared across concurrent agents.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// MatcherKind discriminates how a rule detects.
type MatcherKind string

const (
	// KindPattern rules match a regex against raw file content.
	KindPattern MatcherKind = "pattern"
	// KindStructural rules match an AST shape on parseable files and fall
	// back to their textual pattern everywhere else.
	KindStructural MatcherKind = "structural"
	// KindFileMetric rules check a whole-file measurement.
	KindFileMetric MatcherKind = "file-metric"
	// KindManifest rules run a named check over a parsed dependency manifest.
	KindManifest MatcherKind = "manifest"
)

// StructuralKind names an AST predicate the analyzer knows how to match.
type StructuralKind string

const (
	StructuralNone        StructuralKind = ""
	StructuralDynamicExec StructuralKind = "dynamic-exec"
	StructuralRawHTML     StructuralKind = "raw-html"
	StructuralLLMLoop     StructuralKind = "llm-loop"
)

// ManifestCheck names a dependency-manifest check.
type ManifestCheck string

const (
	ManifestNone       ManifestCheck = ""
	ManifestBlacklist  ManifestCheck = "blacklist"
	ManifestDeprecated ManifestCheck = "deprecated"
	ManifestMalformed  ManifestCheck = "malformed"
)

// Matcher describes a rule's detection mechanics. Exactly one Kind applies;
// structural rules additionally carry a textual fallback pattern for files
// the analyzer cannot parse.
type Matcher struct {
	Kind MatcherKind

	// Pattern is the regex source for KindPattern rules and the textual
	// fallback for KindStructural rules.
	Pattern string
	// Exclude, when set, drops any match whose text it accepts. This is how
	// a pattern expresses carve-outs RE2 cannot (e.g. loopback URLs).
	Exclude string

	Structural StructuralKind // KindStructural only
	MaxLines   int            // KindFileMetric only
	Check      ManifestCheck  // KindManifest only
	Deny       []string       // dependency names for blacklist/deprecated checks

	re        *regexp.Regexp
	excludeRe *regexp.Regexp
}

// Regexp returns the compiled pattern, or nil for matchers without one.
func (m *Matcher) Regexp() *regexp.Regexp { return m.re }

// ExcludeRegexp returns the compiled exclude pattern, or nil if none is set.
func (m *Matcher) ExcludeRegexp() *regexp.Regexp { return m.excludeRe }

func (m *Matcher) compile() error {
	if m.Pattern != "" {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return fmt.Errorf("compiling pattern: %w", err)
		}
		m.re = re
	}
	if m.Exclude != "" {
		re, err := regexp.Compile(m.Exclude)
		if err != nil {
			return fmt.Errorf("compiling exclude pattern: %w", err)
		}
		m.excludeRe = re
	}
	return nil
}

// Rule is one named declarative detector plus its remediation text.
type Rule struct {
	ID          string
	Title       string
	Severity    types.Severity
	Category    types.Category
	Description string
	Remediation string

	// Extensions lists the file extensions (".js") or exact basenames
	// ("package.json") the rule applies to.
	Extensions []string

	// Role, when set, restricts the rule to files the classifier assigns
	// that role (manifest rules to manifests, UI rules to components).
	Role types.FileRole

	Matcher Matcher
}

// Validate checks the rule definition and compiles its patterns. It must be
// called (via Registry.Register) before the rule is evaluated.
func (r *Rule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rule id is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("rule %s: title is required", r.ID)
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("rule %s: invalid severity %q", r.ID, r.Severity)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("rule %s: invalid category %q", r.ID, r.Category)
	}
	if strings.TrimSpace(r.Remediation) == "" {
		return fmt.Errorf("rule %s: remediation is required", r.ID)
	}
	if len(r.Extensions) == 0 {
		return fmt.Errorf("rule %s: at least one applicable extension is required", r.ID)
	}
	if r.Role != "" && !r.Role.IsValid() {
		return fmt.Errorf("rule %s: invalid role %q", r.ID, r.Role)
	}

	switch r.Matcher.Kind {
	case KindPattern:
		if r.Matcher.Pattern == "" {
			return fmt.Errorf("rule %s: pattern is required", r.ID)
		}
	case KindStructural:
		if r.Matcher.Structural == StructuralNone {
			return fmt.Errorf("rule %s: structural kind is required", r.ID)
		}
		if r.Matcher.Pattern == "" {
			return fmt.Errorf("rule %s: structural rules need a textual fallback pattern", r.ID)
		}
	case KindFileMetric:
		if r.Matcher.MaxLines <= 0 {
			return fmt.Errorf("rule %s: max_lines must be positive", r.ID)
		}
	case KindManifest:
		if r.Matcher.Check == ManifestNone {
			return fmt.Errorf("rule %s: manifest check is required", r.ID)
		}
		if (r.Matcher.Check == ManifestBlacklist || r.Matcher.Check == ManifestDeprecated) && len(r.Matcher.Deny) == 0 {
			return fmt.Errorf("rule %s: %s check needs a deny list", r.ID, r.Matcher.Check)
		}
	default:
		return fmt.Errorf("rule %s: invalid matcher kind %q", r.ID, r.Matcher.Kind)
	}

	return r.Matcher.compile()
}

// AppliesTo reports whether the rule covers a file with the given basename,
// extension, and classifier role.
func (r *Rule) AppliesTo(base, ext string, role types.FileRole) bool {
	if r.Role != "" && r.Role != role {
		return false
	}
	for _, e := range r.Extensions {
		if strings.EqualFold(e, ext) || strings.EqualFold(e, base) {
			return true
		}
	}
	return false
}
