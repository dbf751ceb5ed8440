// Package ai is the optional triage assistant: it turns a finished audit
// report into a prioritized summary and can explain individual findings.
// It only ever consumes a report — triage failures degrade to the plain
// report and can never alter findings or the score.
package ai

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/princessjainn/Rodgers-PS1/internal/config"
	"github.com/princessjainn/Rodgers-PS1/internal/report"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// TriageSummary is the assistant's reading of one audit report.
type TriageSummary struct {
	Assessment string   `json:"assessment"`  // one-paragraph overall read
	Blockers   []string `json:"blockers"`    // what must be fixed before deploying
	QuickWins  []string `json:"quick_wins"`  // cheap cleanups worth doing now
	Confidence float64  `json:"confidence"`  // 0.0-1.0
}

// Triage calls the Anthropic Messages API to summarize reports and explain
// findings. Concurrent explanation calls are bounded by a semaphore.
type Triage struct {
	client     *anthropic.Client
	model      string
	maxRetries int
	sem        *semaphore.Weighted
	logger     zerolog.Logger
}

// NewTriage creates the assistant. ANTHROPIC_API_KEY must be set.
func NewTriage(cfg config.AIConfig, logger zerolog.Logger) (*Triage, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Triage{
		client:     &client,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		sem:        semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		logger:     logger,
	}, nil
}

// Summarize asks the model for a triage summary of the report.
func (t *Triage) Summarize(ctx context.Context, rep *types.AuditReport) (*TriageSummary, error) {
	prompt := BuildTriagePrompt(rep)

	text, err := t.call(ctx, "triage", prompt, 1024)
	if err != nil {
		return nil, fmt.Errorf("triage call failed: %w", err)
	}

	var summary TriageSummary
	if err := UnmarshalLenient(text, &summary); err != nil {
		return nil, fmt.Errorf("parsing triage response: %w", err)
	}
	return &summary, nil
}

// ExplainFinding asks the model to explain one finding in context.
func (t *Triage) ExplainFinding(ctx context.Context, f types.Finding) (string, error) {
	prompt := fmt.Sprintf(
		"Explain this code audit finding to a developer in two short paragraphs: "+
			"what the risk is and how to fix it. Be concrete, no preamble.\n\n"+
			"Rule: %s (%s, severity %s)\nFile: %s line %d\nIssue: %s\nSuggested fix: %s\n",
		f.RuleID, f.Category, f.Severity, f.FilePath, f.LineNumber, f.Description, f.Remediation)

	text, err := t.call(ctx, "explain", prompt, 512)
	if err != nil {
		return "", fmt.Errorf("explain call failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// call sends one prompt with retry/backoff, bounded by the concurrency
// semaphore.
func (t *Triage) call(ctx context.Context, operation, prompt string, maxTokens int64) (string, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquiring concurrency slot for %s: %w", operation, err)
	}
	defer t.sem.Release(1)

	var response *anthropic.Message
	err := t.retryWithBackoff(ctx, operation, func(attemptCtx context.Context) error {
		resp, apiErr := t.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(t.model),
			MaxTokens: maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if apiErr != nil {
			return apiErr
		}
		response = resp
		return nil
	})
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}

// BuildTriagePrompt renders a deterministic prompt from the report:
// findings are sorted, counts are explicit, and nothing varies between
// identical reports, so triage output differences come from the model
// alone.
func BuildTriagePrompt(rep *types.AuditReport) string {
	findings := make([]types.Finding, len(rep.Findings))
	copy(findings, rep.Findings)
	report.Sort(findings)

	var b strings.Builder
	b.WriteString("You are triaging a deployment-readiness audit. Respond with JSON only, shaped as ")
	b.WriteString(`{"assessment": string, "blockers": [string], "quick_wins": [string], "confidence": number}.`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Decision: %s, score %d/100. Errors: %d, warnings: %d, info: %d.\n\n",
		rep.Decision, rep.Score, rep.ErrorCount, rep.WarningCount, rep.InfoCount)

	b.WriteString("Findings:\n")
	for _, f := range findings {
		fmt.Fprintf(&b, "- [%s] %s %s:%d — %s\n", f.Severity, f.RuleID, f.FilePath, f.LineNumber, f.Title)
	}

	if len(rep.AgentErrors) > 0 {
		errs := append([]string{}, rep.AgentErrors...)
		sort.Strings(errs)
		b.WriteString("\nPartial results (these agents faulted):\n")
		for _, e := range errs {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	return b.String()
}
