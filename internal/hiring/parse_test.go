package hiring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		score float64
		found bool
	}{
		{
			name:  "labeled score",
			text:  "Strong candidate overall.\nSCORE: 8/10\nRecommended.",
			score: 8,
			found: true,
		},
		{
			name:  "bold markdown score",
			text:  "**SCORE: 7.5/10**",
			score: 7.5,
			found: true,
		},
		{
			name:  "lowercase label with colon inside bold",
			text:  "**Score:** 6/10",
			score: 6,
			found: true,
		},
		{
			name:  "total label",
			text:  "TOTAL: 9/10 across all criteria",
			score: 9,
			found: true,
		},
		{
			name:  "bare fraction fallback",
			text:  "The candidate earns a 4/10 on this rubric.",
			score: 4,
			found: true,
		},
		{
			name:  "out of range rejected",
			text:  "SCORE: 15/10",
			found: false,
		},
		{
			name:  "no score",
			text:  "The candidate shows promise but needs more experience.",
			found: false,
		},
		{
			name:  "empty",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, found := ExtractScore(tt.text)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.score, score)
			}
		})
	}
}

func TestExtractDecision(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Decision
	}{
		{"labeled hire", "DECISION: HIRE\nConfidence: High", DecisionHire},
		{"labeled no hire", "DECISION: NO HIRE", DecisionNoHire},
		{"underscore no hire", "FINAL DECISION: NO_HIRE", DecisionNoHire},
		{"bold decision", "**DECISION: HIRE**", DecisionHire},
		{"recommendation label", "RECOMMENDATION: HIRE", DecisionHire},
		{"phrase fallback hire", "Based on the evidence I recommend hiring this candidate.", DecisionHire},
		{"phrase fallback no hire", "I would not recommend this candidate for the role.", DecisionNoHire},
		{"ambiguous defaults to no hire", "The candidate has mixed results.", DecisionNoHire},
		{"empty defaults to no hire", "", DecisionNoHire},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDecision(tt.text))
		})
	}
}

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Confidence
	}{
		{"high", "DECISION: HIRE\nCONFIDENCE: High", ConfidenceHigh},
		{"low", "CONFIDENCE: low", ConfidenceLow},
		{"bold medium", "**CONFIDENCE:** Medium", ConfidenceMedium},
		{"missing defaults to medium", "DECISION: HIRE", ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractConfidence(tt.text))
		})
	}
}

func TestExtractGitHubUser(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"profile url", "Links: https://github.com/octocat and linkedin.com/in/octo", "octocat"},
		{"handle with marker", "Find me at @octo-cat (GitHub)", "octo-cat"},
		{"labeled username", "GitHub username: dev42", "dev42"},
		{"github colon", "GitHub: coder99", "coder99"},
		{"nothing", "No public code profiles.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractGitHubUser(tt.text))
		})
	}
}

func TestUsernameFromRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"full url", "https://github.com/octocat", "octocat"},
		{"url with trailing slash", "https://github.com/octocat/", "octocat"},
		{"at handle", "@octocat", "octocat"},
		{"bare username", "octocat", "octocat"},
		{"padded", "  octocat  ", "octocat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UsernameFromRef(tt.ref))
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```markdown\n# Rubric\n- item\n```"
	assert.Equal(t, "# Rubric\n- item", StripCodeFences(in))

	assert.Equal(t, "plain text", StripCodeFences("plain text"))
}

func TestCleanRubric(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "strips preamble before level heading",
			text: "Okay, here is the rubric you asked for.\n\n## LEVEL 1 EVALUATION RUBRIC\n- Criteria A",
			want: "## LEVEL 1 EVALUATION RUBRIC\n- Criteria A",
		},
		{
			name: "strips preamble before rubric heading",
			text: "Sure!\n# Evaluation Rubric\n- Criteria B",
			want: "# Evaluation Rubric\n- Criteria B",
		},
		{
			name: "fenced rubric",
			text: "```\nLEVEL 1 EVALUATION RUBRIC\n- Criteria C\n```",
			want: "LEVEL 1 EVALUATION RUBRIC\n- Criteria C",
		},
		{
			name: "no markers left untouched",
			text: "Just criteria with no headings.",
			want: "Just criteria with no headings.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanRubric(tt.text))
		})
	}
}

func TestSanitizeCandidateName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "Jane Doe", "Jane Doe"},
		{"quoted", `"Jane Doe"`, "Jane Doe"},
		{"all caps title cased", "JANE DOE", "Jane Doe"},
		{"too short", "Jo", "Candidate"},
		{"too long", "A name that is definitely way longer than fifty characters total", "Candidate"},
		{"comma means address", "Mumbai, India", "Candidate"},
		{"location indicator", "New York City", "Candidate"},
		{"fallback echo", "candidate", "Candidate"},
		{"empty", "", "Candidate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCandidateName(tt.in))
		})
	}
}
