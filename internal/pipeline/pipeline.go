package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akajammythakkar/hiring-framework-adk/internal/hiring"
)

// Sequencing guard errors. Each operation that depends on an earlier stage
// returns one of these when the prerequisite state is missing.
var (
	ErrNoJobDescription   = errors.New("no job description processed yet")
	ErrNoRubric           = errors.New("no rubric generated yet")
	ErrNoResumeEvaluation = errors.New("no resume evaluated yet")
	ErrNoGitHubAnalysis   = errors.New("no github analysis performed yet")
	ErrNoGitHubUser       = errors.New("no github username available")
	ErrNoVerdict          = errors.New("no final verdict produced yet")
)

// now is a test seam.
var now = time.Now

// Deps aggregates the stage agents shared by the framework.
type Deps struct {
	JD      *hiring.JDProcessor
	Resumes *hiring.ResumeEvaluator
	GitHub  *hiring.GitHubAnalyzer
	Verdict *hiring.VerdictAgent
	Logger  *zap.Logger
}

// Record is one entry in the append-only evaluation history.
type Record struct {
	ID            string
	Time          time.Time
	CandidateName string
	GitHubUser    string
	Level         hiring.Level
	Score         float64
	MaxScore      float64
	Threshold     float64
	ScoreFound    bool
	Passed        bool
	Report        string
}

// Status represents runtime information about a pipeline stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// Framework sequences the evaluation stages and holds the pipeline state:
// the processed job description, the rubric generated for it, the current
// candidate's stage results and the evaluation history. All methods are safe
// for concurrent use.
type Framework struct {
	deps Deps

	mu      sync.Mutex
	jd      *hiring.JobDescription
	rubric  string
	profile *hiring.Profile
	level1  *hiring.StageResult
	level2  *hiring.StageResult
	level3  *hiring.StageResult
	verdict *hiring.Verdict
	history []Record

	githubReason string
}

// New creates a Framework around the stage agents.
func New(deps Deps) *Framework {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Framework{deps: deps}
}

// ProcessJD extracts structured requirements from the job description and
// makes it the current one. Any previously generated rubric, candidate state
// and verdict are discarded since they were derived from the old JD.
func (f *Framework) ProcessJD(ctx context.Context, jdText string) (*hiring.JobDescription, error) {
	jd, err := f.deps.JD.ExtractRequirements(ctx, jdText)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.jd = jd
	f.rubric = ""
	f.clearCandidateLocked()

	f.deps.Logger.Info("job description processed")

	return jd, nil
}

// GenerateRubric synthesizes the Level 1 rubric for the current JD. The
// rubric is generated once per JD and reused for every resume.
func (f *Framework) GenerateRubric(ctx context.Context) (string, error) {
	f.mu.Lock()
	jd := f.jd
	f.mu.Unlock()

	if jd == nil {
		return "", ErrNoJobDescription
	}

	rubric, err := f.deps.JD.GenerateRubric(ctx, jd)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.rubric = rubric
	f.mu.Unlock()

	f.deps.Logger.Info("rubric generated")

	return rubric, nil
}

// RefineRubric rewrites the current rubric according to feedback and stores
// the result.
func (f *Framework) RefineRubric(ctx context.Context, feedback string) (string, error) {
	f.mu.Lock()
	rubric := f.rubric
	f.mu.Unlock()

	if rubric == "" {
		return "", ErrNoRubric
	}

	refined, err := f.deps.JD.RefineRubric(ctx, rubric, feedback)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.rubric = refined
	f.mu.Unlock()

	f.deps.Logger.Info("rubric refined")

	return refined, nil
}

// EvaluateResume runs the Level 1 stage for a new candidate: the resume is
// structured into a profile and scored against the current rubric. State
// from a previous candidate (GitHub analysis, coding result, verdict) is
// cleared.
func (f *Framework) EvaluateResume(ctx context.Context, resumeText string) (*hiring.StageResult, error) {
	f.mu.Lock()
	jd, rubric := f.jd, f.rubric
	f.mu.Unlock()

	if jd == nil {
		return nil, ErrNoJobDescription
	}
	if rubric == "" {
		return nil, ErrNoRubric
	}

	profile, err := f.deps.Resumes.ExtractProfile(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	result, err := f.deps.Resumes.EvaluateLevel1(ctx, jd, profile, rubric)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.clearCandidateLocked()
	f.profile = profile
	f.level1 = result
	f.githubReason = ""
	if profile.GitHubUser == "" {
		f.githubReason = "no github username found in resume"
	}
	f.recordLocked(profile, result)

	return result, nil
}

// AnalyzeGitHub runs the Level 2 stage. With an empty ref the username found
// in the current candidate's resume is used; ErrNoGitHubUser is returned
// when neither is available.
func (f *Framework) AnalyzeGitHub(ctx context.Context, ref string) (*hiring.StageResult, error) {
	f.mu.Lock()
	jd, profile := f.jd, f.profile
	f.mu.Unlock()

	if jd == nil {
		return nil, ErrNoJobDescription
	}
	if profile == nil {
		return nil, ErrNoResumeEvaluation
	}

	if ref == "" {
		ref = profile.GitHubUser
	}
	if ref == "" {
		return nil, ErrNoGitHubUser
	}

	result, err := f.deps.GitHub.Analyze(ctx, ref, jd)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.level2 = result
	f.githubReason = ""
	f.recordLocked(profile, result)

	return result, nil
}

// SetLevel3 records an externally produced coding assessment result for the
// current candidate. No agent produces Level 3.
func (f *Framework) SetLevel3(score float64, threshold float64, report string) (*hiring.StageResult, error) {
	if math.IsNaN(score) || score < 0 || score > hiring.MaxScore {
		return nil, fmt.Errorf("level 3 score %v is out of the 0-%v range", score, hiring.MaxScore)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.profile == nil || f.level1 == nil {
		return nil, ErrNoResumeEvaluation
	}

	result := &hiring.StageResult{
		Level:      hiring.LevelCoding,
		Score:      score,
		MaxScore:   hiring.MaxScore,
		Threshold:  threshold,
		ScoreFound: true,
		Passed:     score >= threshold,
		Report:     report,
	}

	f.level3 = result
	f.recordLocked(f.profile, result)

	return result, nil
}

// FinalVerdict synthesizes the hire/no-hire decision from the recorded stage
// results. Levels 1 and 2 are required; a Level 3 result is included when
// present.
func (f *Framework) FinalVerdict(ctx context.Context) (*hiring.Verdict, error) {
	f.mu.Lock()
	jd, l1, l2, l3 := f.jd, f.level1, f.level2, f.level3
	f.mu.Unlock()

	if jd == nil {
		return nil, ErrNoJobDescription
	}
	if l1 == nil {
		return nil, ErrNoResumeEvaluation
	}
	if l2 == nil {
		return nil, ErrNoGitHubAnalysis
	}

	verdict, err := f.deps.Verdict.Decide(ctx, jd, l1, l2, l3)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.verdict = verdict
	f.mu.Unlock()

	return verdict, nil
}

// JD returns the current processed job description, nil when none.
func (f *Framework) JD() *hiring.JobDescription {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jd
}

// Rubric returns the current rubric, empty when none.
func (f *Framework) Rubric() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rubric
}

// Profile returns the current candidate profile, nil when none.
func (f *Framework) Profile() *hiring.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

// Verdict returns the latest verdict, or ErrNoVerdict.
func (f *Framework) Verdict() (*hiring.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.verdict == nil {
		return nil, ErrNoVerdict
	}
	return f.verdict, nil
}

// History returns a copy of the evaluation history in insertion order.
func (f *Framework) History() []Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := make([]Record, len(f.history))
	copy(history, f.history)
	return history
}

// Reset clears all pipeline state, including the history.
func (f *Framework) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.jd = nil
	f.rubric = ""
	f.clearCandidateLocked()
	f.history = nil

	f.deps.Logger.Info("pipeline state reset")
}

// Describe returns status entries for the pipeline stages.
func (f *Framework) Describe() []Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	statuses := []Status{
		{
			Name:    "jd",
			Enabled: true,
			Details: map[string]string{"processed": strconv.FormatBool(f.jd != nil)},
		},
		{
			Name:    "rubric",
			Enabled: f.jd != nil,
			Reason:  reasonWhenDisabled(f.jd != nil, ErrNoJobDescription),
			Details: map[string]string{"generated": strconv.FormatBool(f.rubric != "")},
		},
		{
			Name:    "level1",
			Enabled: f.jd != nil && f.rubric != "",
			Reason:  level1Reason(f.jd != nil, f.rubric != ""),
		},
	}

	githubEnabled := f.profile != nil && f.githubReason == ""
	githubStatus := Status{
		Name:    "level2",
		Enabled: githubEnabled,
		Reason:  f.githubReason,
	}
	if !githubEnabled && githubStatus.Reason == "" {
		githubStatus.Reason = ErrNoResumeEvaluation.Error()
	}
	statuses = append(statuses, githubStatus)

	verdictEnabled := f.level1 != nil && f.level2 != nil
	verdictStatus := Status{Name: "verdict", Enabled: verdictEnabled}
	if !verdictEnabled {
		verdictStatus.Reason = ErrNoGitHubAnalysis.Error()
		if f.level1 == nil {
			verdictStatus.Reason = ErrNoResumeEvaluation.Error()
		}
	}
	statuses = append(statuses, verdictStatus)

	return statuses
}

func reasonWhenDisabled(enabled bool, err error) string {
	if enabled {
		return ""
	}
	return err.Error()
}

func level1Reason(haveJD, haveRubric bool) string {
	switch {
	case !haveJD:
		return ErrNoJobDescription.Error()
	case !haveRubric:
		return ErrNoRubric.Error()
	default:
		return ""
	}
}

func (f *Framework) clearCandidateLocked() {
	f.profile = nil
	f.level1 = nil
	f.level2 = nil
	f.level3 = nil
	f.verdict = nil
	f.githubReason = ""
}

func (f *Framework) recordLocked(profile *hiring.Profile, result *hiring.StageResult) {
	record := Record{
		ID:            uuid.NewString(),
		Time:          now(),
		CandidateName: profile.CandidateName,
		GitHubUser:    profile.GitHubUser,
		Level:         result.Level,
		Score:         result.Score,
		MaxScore:      result.MaxScore,
		Threshold:     result.Threshold,
		ScoreFound:    result.ScoreFound,
		Passed:        result.Passed,
		Report:        result.Report,
	}

	f.history = append(f.history, record)

	f.deps.Logger.Info("evaluation recorded",
		zap.String("record_id", record.ID),
		zap.String("candidate", record.CandidateName),
		zap.String("level", record.Level.String()),
		zap.Float64("score", record.Score),
		zap.Bool("passed", record.Passed),
	)
}
