package hiring

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	scorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\*{0,2}SCORE:?\*{0,2}\s*\*{0,2}(\d+(?:\.\d+)?)\s*/\s*10`),
		regexp.MustCompile(`(?i)TOTAL:?\s*\*{0,2}(\d+(?:\.\d+)?)\s*/\s*10`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`),
	}

	decisionRe   = regexp.MustCompile(`(?i)(?:FINAL\s+)?(?:DECISION|RECOMMENDATION):?\*{0,2}\s*\*{0,2}(HIRE|NO[\s_]*HIRE)\b`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:?\*{0,2}\s*\*{0,2}(High|Medium|Low)\b`)

	githubUserPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)github\.com/([a-zA-Z0-9-]+)`),
		regexp.MustCompile(`(?i)@([a-zA-Z0-9-]+)\s*\(github\)`),
		regexp.MustCompile(`(?i)github\s+username:\s*([a-zA-Z0-9-]+)`),
		regexp.MustCompile(`(?i)github:\s*([a-zA-Z0-9-]+)`),
	}

	rubricStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:^|\n)(#{1,3}\s*LEVEL\s+1.*)`),
		regexp.MustCompile(`(?is)(?:^|\n)(LEVEL\s+1\s+EVALUATION.*)`),
		regexp.MustCompile(`(?is)(?:^|\n)(#{1,3}[^\n]*RUBRIC.*)`),
	}

	codeFenceOpenRe  = regexp.MustCompile("(?m)^```[\\w]*\\s*\n")
	codeFenceCloseRe = regexp.MustCompile("\n\\s*```\\s*$")
	codeFenceMidRe   = regexp.MustCompile("```[\\w]*\\s*\n?")
)

// ExtractScore finds a numeric X/10 score in the model response. The ok
// result is false when no recognizable score is present.
func ExtractScore(text string) (float64, bool) {
	for _, re := range scorePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			score, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if score < 0 || score > MaxScore {
				continue
			}
			return score, true
		}
	}
	return 0, false
}

// ExtractDecision finds the HIRE/NO HIRE decision in the verdict text. When
// no labeled decision is present it falls back to recommendation phrases,
// then to the conservative NO_HIRE default.
func ExtractDecision(text string) Decision {
	if m := decisionRe.FindStringSubmatch(text); m != nil {
		normalized := strings.ToUpper(m[1])
		normalized = strings.NewReplacer(" ", "_", "\t", "_").Replace(normalized)
		if normalized == "HIRE" {
			return DecisionHire
		}
		return DecisionNoHire
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "recommend hiring"), strings.Contains(lower, "should be hired"):
		return DecisionHire
	case strings.Contains(lower, "not recommend"), strings.Contains(lower, "should not be hired"):
		return DecisionNoHire
	}

	return DecisionNoHire
}

// ExtractConfidence finds the confidence level in the verdict text,
// defaulting to Medium.
func ExtractConfidence(text string) Confidence {
	if m := confidenceRe.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "high":
			return ConfidenceHigh
		case "low":
			return ConfidenceLow
		}
	}
	return ConfidenceMedium
}

// ExtractGitHubUser finds a GitHub username mentioned in free text, such as a
// resume. Returns an empty string when nothing matches.
func ExtractGitHubUser(text string) string {
	for _, re := range githubUserPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// UsernameFromRef normalizes a GitHub profile reference (full URL, @handle or
// bare username) to a username.
func UsernameFromRef(ref string) string {
	ref = strings.TrimRight(strings.TrimSpace(ref), "/")

	if strings.Contains(strings.ToLower(ref), "github.com") {
		if m := githubUserPatterns[0].FindStringSubmatch(ref); m != nil {
			return m[1]
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(ref, "@", ""))
}

// StripCodeFences removes markdown code block wrappers anywhere in the text.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = codeFenceOpenRe.ReplaceAllString(text, "")
	text = codeFenceCloseRe.ReplaceAllString(text, "")
	text = codeFenceMidRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// CleanRubric trims conversational preamble before the rubric body and strips
// code fences. Models tend to prefix generated rubrics with phrases like
// "Okay, here is the rubric".
func CleanRubric(text string) string {
	for _, re := range rubricStartPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			text = m[1]
			break
		}
	}
	return StripCodeFences(text)
}

// fallbackCandidateName is used when no plausible name can be extracted.
const fallbackCandidateName = "Candidate"

var locationIndicators = []string{"india", "usa", "uk", "state", "city", "street", "avenue", "road"}

// SanitizeCandidateName validates a model-extracted candidate name, rejecting
// strings that look like locations or companies, and normalizes ALL CAPS
// names to title case.
func SanitizeCandidateName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)
	name = strings.TrimSpace(name)

	if len(name) < 3 || len(name) > 50 {
		return fallbackCandidateName
	}

	if strings.Contains(name, ",") {
		return fallbackCandidateName
	}

	lower := strings.ToLower(name)
	for _, indicator := range locationIndicators {
		if strings.Contains(lower, indicator) {
			return fallbackCandidateName
		}
	}

	if name == strings.ToUpper(name) {
		name = titleCase(name)
	}

	if strings.EqualFold(name, fallbackCandidateName) {
		return fallbackCandidateName
	}

	return name
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
