package hiring

import (
	_ "embed"
	"strings"
)

//go:embed prompts/jd_extract.md
var jdExtractTemplate string

//go:embed prompts/rubric.md
var rubricTemplate string

//go:embed prompts/rubric_refine.md
var rubricRefineTemplate string

//go:embed prompts/resume_extract.md
var resumeExtractTemplate string

//go:embed prompts/candidate_name.md
var candidateNameTemplate string

//go:embed prompts/level1_eval.md
var level1EvalTemplate string

//go:embed prompts/github_analysis.md
var githubAnalysisTemplate string

//go:embed prompts/verdict.md
var verdictTemplate string

// fillTemplate substitutes {{KEY}} placeholders in the template.
func fillTemplate(template string, replacements map[string]string) string {
	for key, value := range replacements {
		template = strings.ReplaceAll(template, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(template)
}

const defaultMaxLogLength = 200
