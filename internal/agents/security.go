package agents

import (
	"context"

	"github.com/princessjainn/Rodgers-PS1/internal/rules"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
)

// SecurityAgent evaluates the SEC-* rules: hardcoded secrets, dynamic code
// execution, raw HTML injection, SQL string assembly, weak randomness,
// plaintext URLs, and wildcard CORS. Dynamic-execution and HTML-injection
// detection is structural on parseable files.
type SecurityAgent struct{}

func (a *SecurityAgent) Name() string             { return "security" }
func (a *SecurityAgent) Category() types.Category { return types.CategorySecurity }

func (a *SecurityAgent) Analyze(ctx context.Context, files []types.SourceFile, reg *rules.Registry) ([]types.Finding, error) {
	return evaluate(ctx, files, reg.ForCategory(a.Category())), nil
}
