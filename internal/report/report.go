// Package report renders plain-text summaries of recorded evaluations and
// the final verdict.
package report

import (
	"fmt"
	"strings"

	"github.com/akajammythakkar/hiring-framework-adk/internal/hiring"
	"github.com/akajammythakkar/hiring-framework-adk/internal/pipeline"
)

const divider = "============================================================"

// Evaluations renders the full evaluation history as a readable report.
func Evaluations(history []pipeline.Record) string {
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("CANDIDATE EVALUATION REPORT\n")
	b.WriteString(divider + "\n\n")

	if len(history) == 0 {
		b.WriteString("No evaluations recorded.\n")
		return b.String()
	}

	for i, record := range history {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, record.CandidateName, levelTitle(record.Level))
		fmt.Fprintf(&b, "   Recorded: %s\n", record.Time.Format("2006-01-02 15:04:05"))
		if record.GitHubUser != "" {
			fmt.Fprintf(&b, "   GitHub: %s\n", record.GitHubUser)
		}
		fmt.Fprintf(&b, "   Score: %s/%.0f (threshold %.1f)\n", scoreString(record), record.MaxScore, record.Threshold)
		fmt.Fprintf(&b, "   Result: %s\n\n", passString(record.Passed))
	}

	return b.String()
}

// VerdictBanner renders the final verdict summary.
func VerdictBanner(verdict *hiring.Verdict) string {
	if verdict == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("FINAL VERDICT\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Decision:    %s\n", decisionString(verdict.Decision))
	fmt.Fprintf(&b, "Confidence:  %s\n", verdict.Confidence)
	fmt.Fprintf(&b, "Composite:   %.1f/%.0f (across %d levels)\n",
		verdict.CompositeScore, hiring.MaxScore, verdict.LevelsEvaluated)
	fmt.Fprintf(&b, "Level 1:     %.1f/%.0f\n", verdict.Level1Score, hiring.MaxScore)
	fmt.Fprintf(&b, "Level 2:     %.1f/%.0f\n", verdict.Level2Score, hiring.MaxScore)
	if verdict.Level3Score != nil {
		fmt.Fprintf(&b, "Level 3:     %.1f/%.0f\n", *verdict.Level3Score, hiring.MaxScore)
	}
	fmt.Fprintf(&b, "All levels passed: %s\n", passString(verdict.AllLevelsPassed))
	b.WriteString(divider + "\n")

	return b.String()
}

func levelTitle(level hiring.Level) string {
	switch level {
	case hiring.LevelResume:
		return "Level 1 (Resume)"
	case hiring.LevelGitHub:
		return "Level 2 (GitHub)"
	case hiring.LevelCoding:
		return "Level 3 (Coding)"
	default:
		return level.String()
	}
}

func scoreString(record pipeline.Record) string {
	if !record.ScoreFound {
		return "N/A"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", record.Score), ".0")
}

func passString(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func decisionString(decision hiring.Decision) string {
	if decision == hiring.DecisionNoHire {
		return "NO HIRE"
	}
	return string(decision)
}
