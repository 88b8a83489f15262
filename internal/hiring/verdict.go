package hiring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/akajammythakkar/hiring-framework-adk/internal/ai"
	"github.com/akajammythakkar/hiring-framework-adk/internal/logger"
)

const verdictSystemInstruction = `You are a senior technical hiring manager with expertise in comprehensive candidate evaluation. Weigh all evaluation levels, identify key decision factors and red flags, and provide a clear, justified HIRE or NO HIRE recommendation with a confidence level.`

// analysisExcerptRunes bounds how much of each stage report is quoted in the
// verdict prompt.
const analysisExcerptRunes = 1000

// VerdictAgent synthesizes the final hiring recommendation from all
// evaluated levels.
type VerdictAgent struct {
	generator ai.Generator
	weights   Weights
	logger    *zap.Logger
	maxLogLen int
}

// NewVerdictAgent creates a VerdictAgent with the composite score weights.
func NewVerdictAgent(generator ai.Generator, weights Weights, maxLogLength int, log *zap.Logger) *VerdictAgent {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &VerdictAgent{
		generator: generator,
		weights:   weights,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Decide combines the level results into a final verdict. The coding result
// is optional; when absent the composite uses the resume and github weights
// only.
func (a *VerdictAgent) Decide(ctx context.Context, jd *JobDescription, l1, l2, l3 *StageResult) (*Verdict, error) {
	if jd == nil || jd.Text() == "" {
		return nil, errors.New("processed job description is required")
	}
	if l1 == nil {
		return nil, errors.New("level 1 result is required")
	}
	if l2 == nil {
		return nil, errors.New("level 2 result is required")
	}

	var l3Score *float64
	levels := 2
	if l3 != nil {
		score := l3.Score
		l3Score = &score
		levels = 3
	}

	composite := a.weights.Composite(l1.Score, l2.Score, l3Score)
	composite = math.Round(composite*10) / 10

	prompt := fillTemplate(verdictTemplate, map[string]string{
		"JD_SUMMARY":  excerpt(jd.Text(), 500),
		"EVALUATIONS": evaluationsSummary(l1, l2, l3),
		"COMPOSITE":   fmt.Sprintf("%.1f", composite),
		"LEVELS":      fmt.Sprintf("%d", levels),
	})

	a.logger.Debug("verdict request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	report, err := a.generator.GenerateContent(ctx, verdictSystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("final verdict: %w", err)
	}

	a.logger.Debug("verdict response",
		zap.Int("response_length", utf8.RuneCountInString(report)),
		zap.String("response_preview", logger.TruncateForLog(report, a.maxLogLen)),
	)

	allPassed := l1.Passed && l2.Passed
	if l3 != nil {
		allPassed = allPassed && l3.Passed
	}

	verdict := &Verdict{
		Decision:        ExtractDecision(report),
		Confidence:      ExtractConfidence(report),
		CompositeScore:  composite,
		Level1Score:     l1.Score,
		Level2Score:     l2.Score,
		Level3Score:     l3Score,
		AllLevelsPassed: allPassed,
		LevelsEvaluated: levels,
		Report:          report,
	}

	a.logger.Info("final verdict generated",
		zap.String("decision", string(verdict.Decision)),
		zap.String("confidence", string(verdict.Confidence)),
		zap.Float64("composite_score", verdict.CompositeScore),
		zap.Bool("all_levels_passed", verdict.AllLevelsPassed),
	)

	return verdict, nil
}

func evaluationsSummary(l1, l2, l3 *StageResult) string {
	var builder strings.Builder

	builder.WriteString("## EVALUATION SUMMARY\n\n")
	writeLevelSummary(&builder, "Level 1: Resume Analysis", l1)
	writeLevelSummary(&builder, "Level 2: GitHub Analysis", l2)
	if l3 != nil {
		writeLevelSummary(&builder, "Level 3: Coding Assessment", l3)
	}

	return strings.TrimSpace(builder.String())
}

func writeLevelSummary(builder *strings.Builder, title string, result *StageResult) {
	status := "FAILED"
	if result.Passed {
		status = "PASSED"
	}

	fmt.Fprintf(builder, "### %s\n", title)
	fmt.Fprintf(builder, "- Score: %s/%.0f\n", formatScore(result), result.MaxScore)
	fmt.Fprintf(builder, "- Status: %s\n", status)
	fmt.Fprintf(builder, "- Threshold: %.1f/%.0f\n\n", result.Threshold, result.MaxScore)
	fmt.Fprintf(builder, "**Analysis:**\n%s\n\n", excerpt(result.Report, analysisExcerptRunes))
}

func formatScore(result *StageResult) string {
	if !result.ScoreFound {
		return "N/A"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", result.Score), ".0")
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
