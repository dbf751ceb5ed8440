package scoring_test

import (
	"testing"

	"github.com/princessjainn/Rodgers-PS1/internal/scoring"
	"github.com/princessjainn/Rodgers-PS1/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestScoreAndDecide(t *testing.T) {
	tests := []struct {
		name      string
		errors    int
		warnings  int
		infos     int
		wantScore int
		wantDec   types.Decision
	}{
		{"empty finding set", 0, 0, 0, 100, types.DecisionGo},
		{"mixed severities", 2, 1, 3, 34, types.DecisionNoGo},
		{"score floor alone forces no-go", 0, 6, 0, 40, types.DecisionNoGo},
		{"error gate overrides passing score", 1, 0, 0, 75, types.DecisionNoGo},
		{"warnings above the floor pass", 0, 4, 0, 60, types.DecisionGo},
		{"info only", 0, 0, 10, 80, types.DecisionGo},
		{"clamped at zero", 10, 10, 10, 0, types.DecisionNoGo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scoring.Score(tt.errors, tt.warnings, tt.infos)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantDec, scoring.Decide(tt.errors, score))
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	// Adding an error never raises the score.
	for errors := 0; errors < 8; errors++ {
		base := scoring.Score(errors, 3, 3)
		next := scoring.Score(errors+1, 3, 3)
		assert.LessOrEqual(t, next, base, "errors=%d", errors)
	}

	// Adding any finding never flips NO-GO back to GO.
	for errors := 0; errors < 5; errors++ {
		for warnings := 0; warnings < 8; warnings++ {
			score := scoring.Score(errors, warnings, 0)
			if scoring.Decide(errors, score) == types.DecisionNoGo {
				worse := scoring.Score(errors, warnings+1, 0)
				assert.Equal(t, types.DecisionNoGo, scoring.Decide(errors, worse))
				worse = scoring.Score(errors+1, warnings, 0)
				assert.Equal(t, types.DecisionNoGo, scoring.Decide(errors+1, worse))
			}
		}
	}
}

func TestCount(t *testing.T) {
	findings := []types.Finding{
		{Severity: types.SeverityError},
		{Severity: types.SeverityError},
		{Severity: types.SeverityWarning},
		{Severity: types.SeverityInfo},
	}
	errors, warnings, infos := scoring.Count(findings)
	assert.Equal(t, 2, errors)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 1, infos)
}
