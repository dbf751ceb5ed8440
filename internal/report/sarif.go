package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// SARIF 2.1.0 structures, limited to the fields the export fills in.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string          `json:"name"`
	Version        string          `json:"version"`
	InformationURI string          `json:"informationUri,omitempty"`
	Rules          []sarifRuleDesc `json:"rules,omitempty"`
}

type sarifRuleDesc struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
	FullDescription  sarifMessage `json:"fullDescription,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"` // error, warning, note
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

const sarifSchema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"

// WriteSARIF writes the report as a SARIF 2.1.0 log. Severity maps to the
// SARIF level set: ERROR→error, WARNING→warning, INFO→note. Start lines
// stay 1-based as both sides require.
func WriteSARIF(w io.Writer, report *types.AuditReport, toolName, toolVersion string) error {
	findings := make([]types.Finding, len(report.Findings))
	copy(findings, report.Findings)
	Sort(findings)

	results := make([]sarifResult, 0, len(findings))
	ruleDescs := make([]sarifRuleDesc, 0)
	seenRules := make(map[string]bool)

	for _, f := range findings {
		start := f.LineNumber
		if start < 1 {
			start = 1
		}
		results = append(results, sarifResult{
			RuleID:  f.RuleID,
			Level:   severityToLevel(f.Severity),
			Message: sarifMessage{Text: strings.TrimSpace(f.Title + ". " + f.Remediation)},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(f.FilePath)},
					Region:           sarifRegion{StartLine: start},
				},
			}},
		})
		if !seenRules[f.RuleID] {
			seenRules[f.RuleID] = true
			ruleDescs = append(ruleDescs, sarifRuleDesc{
				ID:               f.RuleID,
				Name:             f.Title,
				ShortDescription: sarifMessage{Text: f.Title},
				FullDescription:  sarifMessage{Text: f.Description},
			})
		}
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    toolName,
				Version: toolVersion,
				Rules:   ruleDescs,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encoding sarif: %w", err)
	}
	return nil
}

func severityToLevel(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
