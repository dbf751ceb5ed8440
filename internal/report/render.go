// Package report renders an AuditReport for its consumers: a colored
// terminal summary, plain JSON, and SARIF 2.1.0 for editor and CI
// ingestion. It also filters findings whose line numbers no longer exist
// in a file that changed after the scan ran.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// Sort orders findings for presentation: errors, then warnings, then info,
// with file path and line as secondary keys so output is stable.
func Sort(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.RuleID < b.RuleID
	})
}

// RenderTerminal writes the human-readable report.
func RenderTerminal(w io.Writer, report *types.AuditReport) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "\n%s\n\n", cyan("=== Preflight Audit ==="))

	findings := make([]types.Finding, len(report.Findings))
	copy(findings, report.Findings)
	Sort(findings)

	if len(findings) == 0 {
		fmt.Fprintf(w, "  %s\n", green("No findings."))
	}
	for _, f := range findings {
		var tag string
		switch f.Severity {
		case types.SeverityError:
			tag = red("ERROR")
		case types.SeverityWarning:
			tag = yellow("WARN ")
		default:
			tag = gray("INFO ")
		}
		fmt.Fprintf(w, "  %s %s %s:%d\n", tag, f.RuleID, f.FilePath, f.LineNumber)
		fmt.Fprintf(w, "        %s\n", f.Title)
		fmt.Fprintf(w, "        %s\n", gray("fix: "+f.Remediation))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %d  %s %d  %s %d\n",
		red("errors:"), report.ErrorCount,
		yellow("warnings:"), report.WarningCount,
		gray("info:"), report.InfoCount)

	decision := green(string(report.Decision))
	if report.Decision == types.DecisionNoGo {
		decision = red(string(report.Decision))
	}
	fmt.Fprintf(w, "  score: %d/100  decision: %s\n", report.Score, decision)

	for _, agentErr := range report.AgentErrors {
		fmt.Fprintf(w, "  %s %s\n", yellow("partial result:"), agentErr)
	}
	fmt.Fprintln(w)
}

// WriteJSON writes the report as indented JSON, findings sorted.
func WriteJSON(w io.Writer, report *types.AuditReport) error {
	out := *report
	out.Findings = make([]types.Finding, len(report.Findings))
	copy(out.Findings, report.Findings)
	Sort(out.Findings)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
