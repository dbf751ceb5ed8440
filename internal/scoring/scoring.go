// Package scoring converts per-severity finding counts into the weighted
// readiness score and the GO/NO-GO decision. Both functions are pure and
// total: they never fail, and the empty finding set scores 100/GO.
package scoring

import "github.com/princessjainn/Rodgers-PS1/internal/types"

// Deduction weights per finding severity.
const (
	ErrorWeight   = 25
	WarningWeight = 10
	InfoWeight    = 2
)

// ScoreFloor is the minimum score that still permits a GO decision.
const ScoreFloor = 50

// Score computes clamp(100 - 25*errors - 10*warnings - 2*infos, 0, 100).
func Score(errors, warnings, infos int) int {
	score := 100 - ErrorWeight*errors - WarningWeight*warnings - InfoWeight*infos
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Decide returns NO-GO when any error finding exists or the score falls
// below the floor. The error-count gate overrides the score: one error is
// NO-GO even at score 75.
func Decide(errors, score int) types.Decision {
	if errors > 0 || score < ScoreFloor {
		return types.DecisionNoGo
	}
	return types.DecisionGo
}

// Count tallies findings by severity.
func Count(findings []types.Finding) (errors, warnings, infos int) {
	for i := range findings {
		switch findings[i].Severity {
		case types.SeverityError:
			errors++
		case types.SeverityWarning:
			warnings++
		case types.SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
