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

const jdSystemInstruction = `You are an expert HR analyst specializing in job description analysis and hiring evaluation rubrics. Extract structured information from job descriptions and produce objective, measurable evaluation criteria.`

// JDProcessor extracts structured requirements from job descriptions and
// synthesizes Level 1 evaluation rubrics.
type JDProcessor struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

// NewJDProcessor creates a JDProcessor. maxLogLength bounds prompt/response
// previews in debug logs.
func NewJDProcessor(generator ai.Generator, maxLogLength int, log *zap.Logger) *JDProcessor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &JDProcessor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ExtractRequirements runs the extraction prompt over the raw job
// description and returns the processed JobDescription.
func (p *JDProcessor) ExtractRequirements(ctx context.Context, jdText string) (*JobDescription, error) {
	jdText = strings.TrimSpace(jdText)
	if jdText == "" {
		return nil, errors.New("job description text is required")
	}

	prompt := fillTemplate(jdExtractTemplate, map[string]string{"JD_TEXT": jdText})

	extracted, err := p.generate(ctx, "jd_extract", prompt)
	if err != nil {
		return nil, fmt.Errorf("extract jd requirements: %w", err)
	}

	return &JobDescription{Raw: jdText, Requirements: extracted}, nil
}

// GenerateRubric synthesizes the Level 1 rubric from the processed job
// description. Conversational preamble and code fences are stripped.
func (p *JDProcessor) GenerateRubric(ctx context.Context, jd *JobDescription) (string, error) {
	if jd == nil || jd.Text() == "" {
		return "", errors.New("processed job description is required")
	}

	prompt := fillTemplate(rubricTemplate, map[string]string{"JD_INFO": jd.Text()})

	raw, err := p.generate(ctx, "rubric", prompt)
	if err != nil {
		return "", fmt.Errorf("generate rubric: %w", err)
	}

	rubric := CleanRubric(raw)
	if rubric == "" {
		return "", errors.New("model returned an empty rubric")
	}

	return rubric, nil
}

// RefineRubric rewrites the rubric according to user feedback.
func (p *JDProcessor) RefineRubric(ctx context.Context, rubric, feedback string) (string, error) {
	if strings.TrimSpace(rubric) == "" {
		return "", errors.New("current rubric is required")
	}
	if strings.TrimSpace(feedback) == "" {
		return "", errors.New("feedback is required")
	}

	prompt := fillTemplate(rubricRefineTemplate, map[string]string{
		"RUBRIC":   rubric,
		"FEEDBACK": feedback,
	})

	refined, err := p.generate(ctx, "rubric_refine", prompt)
	if err != nil {
		return "", fmt.Errorf("refine rubric: %w", err)
	}

	return CleanRubric(refined), nil
}

func (p *JDProcessor) generate(ctx context.Context, operation, prompt string) (string, error) {
	p.logger.Debug("jd processor request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, jdSystemInstruction, prompt)
	if err != nil {
		return "", err
	}

	p.logger.Debug("jd processor response",
		zap.String("operation", operation),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, p.maxLogLen)),
	)

	return raw, nil
}
