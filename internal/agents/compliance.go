package agents

import (
	"context"

	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// ComplianceAgent evaluates the CMP-* rules: PII leaking into debug output
// and leftover development logging. Purely textual.
type ComplianceAgent struct{}

func (a *ComplianceAgent) Name() string             { return "compliance" }
func (a *ComplianceAgent) Category() types.Category { return types.CategoryCompliance }

func (a *ComplianceAgent) Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error) {
	return evaluate(ctx, files, reg.ForCategory(a.Category())), nil
}
