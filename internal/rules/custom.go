package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// ruleFile is the YAML schema for user-supplied rule files.
//
// Example:
//
//	rules:
//	  - id: ORG-001
//	    title: "Internal hostname in source"
//	    severity: WARNING
//	    category: compliance
//	    description: "Internal hostnames must not ship in client code"
//	    remediation: "Read the hostname from configuration"
//	    extensions: [".js", ".ts"]
//	    pattern: '\binternal\.corp\.example\b'
type ruleFile struct {
	Rules []customRule `yaml:"rules"`
}

type customRule struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Severity    string   `yaml:"severity"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Remediation string   `yaml:"remediation"`
	Extensions  []string `yaml:"extensions"`
	Role        string   `yaml:"role,omitempty"`
	Pattern     string   `yaml:"pattern"`
	Exclude     string   `yaml:"exclude,omitempty"`
}

// LoadRuleFile parses a YAML rule file into textual rules. Only pattern
// rules are expressible in YAML; structural, metric, and manifest matchers
// are built-in only.
func LoadRuleFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing rule file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s defines no rules", path)
	}

	out := make([]Rule, 0, len(file.Rules))
	for i, cr := range file.Rules {
		severity, err := types.ParseSeverity(cr.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, cr.ID, err)
		}
		rule := Rule{
			ID:          cr.ID,
			Title:       cr.Title,
			Severity:    severity,
			Category:    types.Category(cr.Category),
			Description: cr.Description,
			Remediation: cr.Remediation,
			Extensions:  cr.Extensions,
			Role:        types.FileRole(cr.Role),
			Matcher: Matcher{
				Kind:    KindPattern,
				Pattern: cr.Pattern,
				Exclude: cr.Exclude,
			},
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

// LoadInto loads a YAML rule file and registers every rule it defines.
func LoadInto(r *Registry, path string) error {
	loaded, err := LoadRuleFile(path)
	if err != nil {
		return err
	}
	for _, rule := range loaded {
		if err := r.Register(rule); err != nil {
			return fmt.Errorf("registering %s: %w", path, err)
		}
	}
	return nil
}
