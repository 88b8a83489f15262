package hiring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/akajammythakkar/hiring-framework-adk/internal/ai"
	"github.com/akajammythakkar/hiring-framework-adk/internal/logger"
)

const resumeSystemInstruction = `You are an expert technical recruiter with deep experience in resume parsing and candidate evaluation. Analyze resumes against rubric criteria strictly, cite specific evidence, and always report scores in the requested format.`

// nameExtractionHead bounds how much of the resume is sent for name
// extraction; the name is at the top.
const nameExtractionHead = 1500

// ResumeEvaluator structures resumes and performs the Level 1 screening
// against a rubric.
type ResumeEvaluator struct {
	generator ai.Generator
	threshold float64
	logger    *zap.Logger
	maxLogLen int
}

// NewResumeEvaluator creates a ResumeEvaluator with the Level 1 pass
// threshold.
func NewResumeEvaluator(generator ai.Generator, threshold float64, maxLogLength int, log *zap.Logger) *ResumeEvaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &ResumeEvaluator{
		generator: generator,
		threshold: threshold,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ExtractProfile structures the resume via the model and pulls the candidate
// name and GitHub username out of it.
func (e *ResumeEvaluator) ExtractProfile(ctx context.Context, resumeText string) (*Profile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, errors.New("resume text is required")
	}

	prompt := fillTemplate(resumeExtractTemplate, map[string]string{"RESUME_TEXT": resumeText})

	structured, err := e.generate(ctx, "resume_extract", prompt)
	if err != nil {
		return nil, fmt.Errorf("extract resume profile: %w", err)
	}

	profile := &Profile{
		Raw:           resumeText,
		Structured:    structured,
		GitHubUser:    ExtractGitHubUser(resumeText),
		CandidateName: e.extractCandidateName(ctx, resumeText),
	}

	e.logger.Debug("resume profile extracted",
		zap.String("candidate", profile.CandidateName),
		zap.String("github_user", profile.GitHubUser),
	)

	return profile, nil
}

// extractCandidateName asks the model for the candidate's name and sanity
// checks the answer. Failures fall back to the generic placeholder rather
// than failing the whole extraction.
func (e *ResumeEvaluator) extractCandidateName(ctx context.Context, resumeText string) string {
	head := resumeText
	if runes := []rune(head); len(runes) > nameExtractionHead {
		head = string(runes[:nameExtractionHead])
	}

	prompt := fillTemplate(candidateNameTemplate, map[string]string{"RESUME_HEAD": head})

	name, err := e.generate(ctx, "candidate_name", prompt)
	if err != nil {
		e.logger.Warn("candidate name extraction failed", zap.Error(err))
		return fallbackCandidateName
	}

	return SanitizeCandidateName(name)
}

// EvaluateLevel1 scores the profile against the job description using the
// rubric and compares the parsed score with the threshold.
func (e *ResumeEvaluator) EvaluateLevel1(ctx context.Context, jd *JobDescription, profile *Profile, rubric string) (*StageResult, error) {
	if jd == nil || jd.Text() == "" {
		return nil, errors.New("processed job description is required")
	}
	if profile == nil || profile.Text() == "" {
		return nil, errors.New("resume profile is required")
	}
	if strings.TrimSpace(rubric) == "" {
		return nil, errors.New("rubric is required")
	}

	prompt := fillTemplate(level1EvalTemplate, map[string]string{
		"JD":     jd.Text(),
		"RESUME": profile.Text(),
		"RUBRIC": rubric,
	})

	report, err := e.generate(ctx, "level1_eval", prompt)
	if err != nil {
		return nil, fmt.Errorf("level 1 evaluation: %w", err)
	}

	score, found := ExtractScore(report)

	result := &StageResult{
		Level:      LevelResume,
		Score:      score,
		MaxScore:   MaxScore,
		Threshold:  e.threshold,
		ScoreFound: found,
		Passed:     found && score >= e.threshold,
		Report:     report,
	}

	logger.WithEvaluationFields(e.logger, profile.CandidateName, result.Level.String()).Info("level 1 evaluation completed",
		zap.Float64("score", result.Score),
		zap.Bool("score_found", result.ScoreFound),
		zap.Bool("passed", result.Passed),
		zap.Float64("threshold", result.Threshold),
	)

	return result, nil
}

func (e *ResumeEvaluator) generate(ctx context.Context, operation, prompt string) (string, error) {
	e.logger.Debug("resume evaluator request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, resumeSystemInstruction, prompt)
	if err != nil {
		return "", err
	}

	e.logger.Debug("resume evaluator response",
		zap.String("operation", operation),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	return raw, nil
}
