package hiring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorCall struct {
	system string
	prompt string
}

// stubGenerator returns queued responses and records every call.
type stubGenerator struct {
	responses []string
	err       error
	calls     []generatorCall
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, prompt string) (string, error) {
	s.calls = append(s.calls, generatorCall{system: system, prompt: prompt})
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no stubbed response")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *stubGenerator) Model() string { return "stub-model" }

func TestExtractRequirements(t *testing.T) {
	gen := &stubGenerator{responses: []string{"## Required Skills\n- Go\n- Kubernetes"}}
	processor := NewJDProcessor(gen, 0, nil)

	jd, err := processor.ExtractRequirements(context.Background(), "We need a Go engineer.")
	require.NoError(t, err)

	assert.Equal(t, "We need a Go engineer.", jd.Raw)
	assert.Equal(t, "## Required Skills\n- Go\n- Kubernetes", jd.Requirements)
	assert.Equal(t, jd.Requirements, jd.Text())

	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].prompt, "We need a Go engineer.")
}

func TestExtractRequirementsEmptyInput(t *testing.T) {
	processor := NewJDProcessor(&stubGenerator{}, 0, nil)

	_, err := processor.ExtractRequirements(context.Background(), "   \n ")
	require.Error(t, err)
}

func TestGenerateRubric(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		"Okay, here is your rubric.\n\n## LEVEL 1 EVALUATION RUBRIC\n- Go experience (0-4)\n- System design (0-3)",
	}}
	processor := NewJDProcessor(gen, 0, nil)

	rubric, err := processor.GenerateRubric(context.Background(), &JobDescription{Requirements: "Go engineer"})
	require.NoError(t, err)

	assert.Equal(t, "## LEVEL 1 EVALUATION RUBRIC\n- Go experience (0-4)\n- System design (0-3)", rubric)
	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].prompt, "Go engineer")
}

func TestGenerateRubricRequiresJD(t *testing.T) {
	processor := NewJDProcessor(&stubGenerator{}, 0, nil)

	_, err := processor.GenerateRubric(context.Background(), nil)
	require.Error(t, err)

	_, err = processor.GenerateRubric(context.Background(), &JobDescription{})
	require.Error(t, err)
}

func TestGenerateRubricGeneratorError(t *testing.T) {
	sentinel := errors.New("boom")
	processor := NewJDProcessor(&stubGenerator{err: sentinel}, 0, nil)

	_, err := processor.GenerateRubric(context.Background(), &JobDescription{Raw: "jd"})
	require.ErrorIs(t, err, sentinel)
}

func TestRefineRubric(t *testing.T) {
	gen := &stubGenerator{responses: []string{"## LEVEL 1 EVALUATION RUBRIC\n- Go experience (0-5)"}}
	processor := NewJDProcessor(gen, 0, nil)

	refined, err := processor.RefineRubric(context.Background(), "## Old rubric", "weight Go higher")
	require.NoError(t, err)

	assert.Equal(t, "## LEVEL 1 EVALUATION RUBRIC\n- Go experience (0-5)", refined)
	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0].prompt, "## Old rubric")
	assert.Contains(t, gen.calls[0].prompt, "weight Go higher")
}

func TestRefineRubricRequiresFeedback(t *testing.T) {
	processor := NewJDProcessor(&stubGenerator{}, 0, nil)

	_, err := processor.RefineRubric(context.Background(), "rubric", "  ")
	require.Error(t, err)
}
