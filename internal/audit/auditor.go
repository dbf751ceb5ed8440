// Package audit coordinates one scan call: it fans the category agents out
// as concurrent tasks, joins them at a hard barrier, deduplicates the
// merged findings, and assembles the scored report.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/princessjainn/Rodgers-PS1/internal/agents"
	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/scoring"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// Auditor runs scans against one rule registry. The registry is read-only
// during a scan and safe to share across every agent goroutine; the
// Auditor itself holds no per-scan state, so concurrent Run calls are
// independent.
type Auditor struct {
	registry *rules.Registry
	agents   []agents.Agent
	logger   zerolog.Logger
}

// New creates an auditor over the given registry with the canonical agent
// set.
func New(registry *rules.Registry, logger zerolog.Logger) *Auditor {
	return &Auditor{
		registry: registry,
		agents:   agents.Canonical(),
		logger:   logger,
	}
}

// NewWithAgents creates an auditor over a custom agent set. The slice
// order becomes the dedup tie-break order.
func NewWithAgents(registry *rules.Registry, logger zerolog.Logger, set []agents.Agent) *Auditor {
	return &Auditor{
		registry: registry,
		agents:   set,
		logger:   logger,
	}
}

// Registry exposes the rule registry backing this auditor.
func (a *Auditor) Registry() *rules.Registry { return a.registry }

// Run executes one scan call over the file set and returns the report.
//
// Every agent runs as its own goroutine with its own result slot, so the
// tasks share no mutable state and their completion order is irrelevant.
// The errgroup Wait is the barrier: nothing is aggregated until every
// agent has finished. Dedup then walks the slots in the canonical agent
// order so the surviving duplicate is deterministic regardless of
// scheduling.
//
// A panicking or erroring agent never takes the scan down: its failure is
// recorded in AgentErrors and the other agents' findings are kept.
func (a *Auditor) Run(ctx context.Context, files []types.SourceFile) types.AuditReport {
	start := time.Now()

	results := make([][]types.Finding, len(a.agents))
	failures := make([]string, len(a.agents))

	var g errgroup.Group
	for i, agent := range a.agents {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failures[i] = fmt.Sprintf("agent %s panicked: %v", agent.Name(), r)
					results[i] = nil
				}
			}()

			findings, err := agent.Analyze(ctx, files, a.registry)
			if err != nil {
				failures[i] = fmt.Sprintf("agent %s failed: %v", agent.Name(), err)
				return nil
			}
			results[i] = findings
			return nil
		})
	}
	// Closures always return nil; failures are isolated per slot instead
	// of cancelling sibling agents.
	_ = g.Wait()

	var merged []types.Finding
	var agentErrors []string
	for i := range a.agents {
		if failures[i] != "" {
			agentErrors = append(agentErrors, failures[i])
			continue
		}
		merged = append(merged, results[i]...)
	}

	findings := Deduplicate(merged)
	errors, warnings, infos := scoring.Count(findings)
	score := scoring.Score(errors, warnings, infos)

	report := types.AuditReport{
		ID:           uuid.New().String(),
		Findings:     findings,
		ErrorCount:   errors,
		WarningCount: warnings,
		InfoCount:    infos,
		Score:        score,
		Decision:     scoring.Decide(errors, score),
		GeneratedAt:  time.Now().UTC(),
		Duration:     time.Since(start),
		AgentErrors:  agentErrors,
	}

	a.logger.Debug().
		Int("files", len(files)).
		Int("findings", len(findings)).
		Int("score", report.Score).
		Str("decision", string(report.Decision)).
		Dur("duration", report.Duration).
		Msg("scan complete")

	return report
}

// Deduplicate collapses findings sharing a (rule, file, line) key, keeping
// the first occurrence. Input order is the canonical agent order, which is
// the only tie-break semantics the order carries.
func Deduplicate(findings []types.Finding) []types.Finding {
	if len(findings) == 0 {
		return nil
	}
	seen := make(map[types.FindingKey]struct{}, len(findings))
	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		key := f.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}
