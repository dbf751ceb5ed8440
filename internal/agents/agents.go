// Package agents holds the five category agents the audit fans out over.
// Each agent is a pure function of (file set, rule registry) built from the
// classifier, the structural analyzer, and the pattern matcher; no agent
// observes another's output or state, so adding a rule to one category
// never touches the others.
package agents

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/princessjainn/Rodgers-PS1/internal/analyzer"
	"github.com/princessjainn/Rodgers-PS1/internal/classify"
	"github.com/princessjainn/Rodgers-PS1/internal/match"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// Agent evaluates one category's rule subset over a file set.
type Agent interface {
	// Name returns the unique identifier for this agent.
	Name() string

	// Category returns the detection domain whose rules this agent owns.
	Category() types.Category

	// Analyze evaluates the agent's rules over the files and returns every
	// finding. It holds no state between calls and mutates nothing it is
	// given.
	Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error)
}

// Canonical returns the five agents in the canonical dedup tie-break
// order: security, compliance, architecture, dependency, ai-risk. The
// order decides which duplicate survives when two agents emit the same
// (rule, file, line) key; it carries no other meaning, and agents run
// concurrently regardless of it.
func Canonical() []Agent {
	return []Agent{
		&SecurityAgent{},
		&ComplianceAgent{},
		&ArchitectureAgent{},
		&ManifestAgent{},
		&AIRiskAgent{},
	}
}

// newFinding builds a finding from a rule match. The rule supplies every
// field except the location, so two surfaces can never render the same
// rule with drifted severity or text.
func newFinding(rule rules.Rule, path string, line int) types.Finding {
	return types.Finding{
		RuleID:      rule.ID,
		FilePath:    path,
		LineNumber:  line,
		Title:       rule.Title,
		Description: rule.Description,
		Remediation: rule.Remediation,
		Severity:    rule.Severity,
		Category:    rule.Category,
	}
}

// applicable filters a rule subset down to the rules covering one file.
func applicable(path string, ruleset []rules.Rule) []rules.Rule {
	c := classify.Classify(path)
	if !c.Eligible {
		return nil
	}
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	var out []rules.Rule
	for _, rule := range ruleset {
		if rule.AppliesTo(base, ext, c.Role) {
			out = append(out, rule)
		}
	}
	return out
}

// evaluate runs pattern, structural, and file-metric rules over the file
// set. Manifest rules are the ManifestAgent's own concern and are skipped.
//
// Per file it builds one line index, runs the structural analyzer at most
// once (only when a structural rule applies and a grammar is available),
// and then walks the rule subset. For a file the analyzer parsed, a
// structural rule's textual fallback is suppressed — the structural result
// owns that rule id on that file, so one logical issue can never produce
// two findings.
func evaluate(ctx context.Context, files []types.SourceFile, ruleset []rules.Rule) []types.Finding {
	var findings []types.Finding

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			// A scan runs to completion per §5; context expiry only stops
			// work the caller will no longer collect.
			return findings
		}

		fileRules := applicable(file.Path, ruleset)
		if len(fileRules) == 0 {
			continue
		}

		idx := match.NewLineIndex(file.Content)
		c := classify.Classify(file.Path)

		want := make(map[rules.StructuralKind]bool)
		if c.Structural {
			for _, rule := range fileRules {
				if rule.Matcher.Kind == rules.KindStructural {
					want[rule.Matcher.Structural] = true
				}
			}
		}

		var structural analyzer.Result
		if len(want) > 0 {
			structural = analyzer.Analyze(file.Content, want, idx)
		}

		for _, rule := range fileRules {
			switch rule.Matcher.Kind {
			case rules.KindPattern:
				for _, hit := range match.Evaluate(rule.Matcher.Regexp(), rule.Matcher.ExcludeRegexp(), file.Content, idx) {
					findings = append(findings, newFinding(rule, file.Path, hit.Line))
				}

			case rules.KindStructural:
				if structural.Parsed {
					for _, hit := range structural.Hits {
						if hit.Kind == rule.Matcher.Structural {
							findings = append(findings, newFinding(rule, file.Path, hit.Line))
						}
					}
					continue
				}
				// Unparseable file: the textual fallback owns the rule.
				for _, hit := range match.Evaluate(rule.Matcher.Regexp(), rule.Matcher.ExcludeRegexp(), file.Content, idx) {
					findings = append(findings, newFinding(rule, file.Path, hit.Line))
				}

			case rules.KindFileMetric:
				if idx.LineCount() > rule.Matcher.MaxLines {
					// A file-level condition anchors at line 1.
					findings = append(findings, newFinding(rule, file.Path, 1))
				}
			}
		}
	}

	return findings
}
