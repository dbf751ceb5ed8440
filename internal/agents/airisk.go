package agents

import (
	"context"

	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// AIRiskAgent evaluates the AIR-* rules: request input interpolated into
// LLM prompts and model calls inside unbounded loops. The loop detection
// is structural on parseable files, where the analyzer tracks loop nesting
// during its single walk.
type AIRiskAgent struct{}

func (a *AIRiskAgent) Name() string             { return "ai-risk" }
func (a *AIRiskAgent) Category() types.Category { return types.CategoryAIRisk }

func (a *AIRiskAgent) Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error) {
	return evaluate(ctx, files, reg.ForCategory(a.Category())), nil
}
