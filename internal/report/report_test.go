package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akajammythakkar/hiring-framework-adk/internal/hiring"
	"github.com/akajammythakkar/hiring-framework-adk/internal/pipeline"
)

func TestEvaluationsEmpty(t *testing.T) {
	out := Evaluations(nil)

	assert.Contains(t, out, "CANDIDATE EVALUATION REPORT")
	assert.Contains(t, out, "No evaluations recorded.")
}

func TestEvaluations(t *testing.T) {
	history := []pipeline.Record{
		{
			CandidateName: "Jane Doe",
			GitHubUser:    "jane-doe",
			Level:         hiring.LevelResume,
			Score:         8,
			MaxScore:      hiring.MaxScore,
			Threshold:     7,
			ScoreFound:    true,
			Passed:        true,
			Time:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			CandidateName: "Jane Doe",
			Level:         hiring.LevelGitHub,
			MaxScore:      hiring.MaxScore,
			Threshold:     6,
			ScoreFound:    false,
			Passed:        false,
			Time:          time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		},
	}

	out := Evaluations(history)

	assert.Contains(t, out, "1. Jane Doe - Level 1 (Resume)")
	assert.Contains(t, out, "GitHub: jane-doe")
	assert.Contains(t, out, "Score: 8/10 (threshold 7.0)")
	assert.Contains(t, out, "Result: PASSED")
	assert.Contains(t, out, "2. Jane Doe - Level 2 (GitHub)")
	assert.Contains(t, out, "Score: N/A/10")
	assert.Contains(t, out, "Result: FAILED")
	assert.Contains(t, out, "2025-06-01 12:00:00")
}

func TestVerdictBanner(t *testing.T) {
	l3 := 9.0
	verdict := &hiring.Verdict{
		Decision:        hiring.DecisionHire,
		Confidence:      hiring.ConfidenceHigh,
		CompositeScore:  8.1,
		Level1Score:     8,
		Level2Score:     7,
		Level3Score:     &l3,
		AllLevelsPassed: true,
		LevelsEvaluated: 3,
	}

	out := VerdictBanner(verdict)

	assert.Contains(t, out, "FINAL VERDICT")
	assert.Contains(t, out, "Decision:    HIRE")
	assert.Contains(t, out, "Confidence:  High")
	assert.Contains(t, out, "Composite:   8.1/10 (across 3 levels)")
	assert.Contains(t, out, "Level 3:     9.0/10")
	assert.Contains(t, out, "All levels passed: PASSED")
}

func TestVerdictBannerNoHire(t *testing.T) {
	verdict := &hiring.Verdict{
		Decision:        hiring.DecisionNoHire,
		Confidence:      hiring.ConfidenceMedium,
		CompositeScore:  5.5,
		LevelsEvaluated: 2,
	}

	out := VerdictBanner(verdict)

	assert.Contains(t, out, "Decision:    NO HIRE")
	assert.NotContains(t, out, "Level 3:")
}

func TestVerdictBannerNil(t *testing.T) {
	assert.Empty(t, VerdictBanner(nil))
}
