package hiring

import "fmt"

// Level identifies an evaluation stage.
type Level int

const (
	// LevelResume is the resume-vs-JD screening stage.
	LevelResume Level = 1
	// LevelGitHub is the GitHub profile analysis stage.
	LevelGitHub Level = 2
	// LevelCoding is the coding assessment stage. No agent produces it; the
	// verdict accepts an externally supplied result.
	LevelCoding Level = 3
)

func (l Level) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// MaxScore is the scale every stage is scored on.
const MaxScore = 10.0

// Thresholds holds the pass score per level.
type Thresholds struct {
	Level1 float64
	Level2 float64
	Level3 float64
}

// DefaultThresholds returns the stock pass thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Level1: 7.0, Level2: 6.0, Level3: 8.0}
}

// ForLevel returns the threshold for the given level, defaulting to the
// Level 1 threshold for unknown levels.
func (t Thresholds) ForLevel(l Level) float64 {
	switch l {
	case LevelResume:
		return t.Level1
	case LevelGitHub:
		return t.Level2
	case LevelCoding:
		return t.Level3
	default:
		return t.Level1
	}
}

// Weights holds the per-level weights for the composite score. When only two
// levels were evaluated the resume and github weights are renormalized.
type Weights struct {
	Resume float64
	GitHub float64
	Coding float64
}

// DefaultWeights returns the stock composite weights: 30/30/40 with a coding
// result, 50/50 without.
func DefaultWeights() Weights {
	return Weights{Resume: 0.3, GitHub: 0.3, Coding: 0.4}
}

// Composite computes the weighted average score across the evaluated levels.
func (w Weights) Composite(l1, l2 float64, l3 *float64) float64 {
	if l3 != nil {
		total := w.Resume + w.GitHub + w.Coding
		if total <= 0 {
			return 0
		}
		return (l1*w.Resume + l2*w.GitHub + *l3*w.Coding) / total
	}

	total := w.Resume + w.GitHub
	if total <= 0 {
		return 0
	}
	return (l1*w.Resume + l2*w.GitHub) / total
}

// JobDescription is the processed form of a job description.
type JobDescription struct {
	// Raw is the job description text as provided.
	Raw string
	// Requirements is the structured extraction produced by the model.
	Requirements string
}

// Text returns the best available representation for prompt building.
func (jd *JobDescription) Text() string {
	if jd == nil {
		return ""
	}
	if jd.Requirements != "" {
		return jd.Requirements
	}
	return jd.Raw
}

// Profile is the processed form of a resume.
type Profile struct {
	// Raw is the resume text as provided.
	Raw string
	// Structured is the model's structured extraction of the resume.
	Structured string
	// CandidateName is the extracted candidate name, "Candidate" when the
	// extraction failed or looked implausible.
	CandidateName string
	// GitHubUser is the GitHub username found in the resume, if any.
	GitHubUser string
}

// Text returns the best available representation for prompt building.
func (p *Profile) Text() string {
	if p == nil {
		return ""
	}
	if p.Structured != "" {
		return p.Structured
	}
	return p.Raw
}

// StageResult is the outcome of one evaluation stage.
type StageResult struct {
	Level     Level
	Score     float64
	MaxScore  float64
	Threshold float64
	// ScoreFound reports whether a score could be parsed out of the model
	// response. When false, Passed is always false.
	ScoreFound bool
	Passed     bool
	// Report is the full model response for the stage.
	Report string
}

// Decision is the final hiring recommendation.
type Decision string

const (
	DecisionHire   Decision = "HIRE"
	DecisionNoHire Decision = "NO_HIRE"
)

// Confidence qualifies how certain the verdict is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Verdict is the synthesized hiring recommendation across all levels.
type Verdict struct {
	Decision        Decision
	Confidence      Confidence
	CompositeScore  float64
	Level1Score     float64
	Level2Score     float64
	Level3Score     *float64
	AllLevelsPassed bool
	LevelsEvaluated int
	// Report is the full model response for the verdict.
	Report string
}
