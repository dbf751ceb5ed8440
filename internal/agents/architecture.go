package agents

import (
	"context"

	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// ArchitectureAgent evaluates the ARC-* rules: server-side database
// clients imported from UI component files (role-gated) and oversized
// source files (line count from the shared index).
type ArchitectureAgent struct{}

func (a *ArchitectureAgent) Name() string             { return "architecture" }
func (a *ArchitectureAgent) Category() types.Category { return types.CategoryArchitecture }

func (a *ArchitectureAgent) Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error) {
	return evaluate(ctx, files, reg.ForCategory(a.Category())), nil
}
