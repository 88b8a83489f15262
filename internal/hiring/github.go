package hiring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/akajammythakkar/hiring-framework-adk/internal/ai"
	"github.com/akajammythakkar/hiring-framework-adk/internal/github"
	"github.com/akajammythakkar/hiring-framework-adk/internal/logger"
)

const githubSystemInstruction = `You are an expert at evaluating software engineering skills through GitHub profiles. Analyze repositories for code quality, project complexity, contribution consistency, technology stack alignment, documentation and testing practices. Provide objective, evidence-based assessments with specific examples.`

// maxRepoSummaryEntries bounds how many repositories are described in the
// analysis prompt.
const maxRepoSummaryEntries = 10

const unverifiedSummary = "Repository summary: unavailable (profile not verified)."

// ProfileFetcher is the part of the GitHub client the analyzer needs.
type ProfileFetcher interface {
	GetUser(ctx context.Context, login string) (*github.User, error)
	ListRepos(ctx context.Context, login string) ([]github.Repo, error)
}

// GitHubAnalyzer performs the Level 2 evaluation of a candidate's GitHub
// profile against the job requirements.
type GitHubAnalyzer struct {
	generator ai.Generator
	fetcher   ProfileFetcher
	threshold float64
	logger    *zap.Logger
	maxLogLen int
}

// NewGitHubAnalyzer creates a GitHubAnalyzer with the Level 2 pass threshold.
func NewGitHubAnalyzer(generator ai.Generator, fetcher ProfileFetcher, threshold float64, maxLogLength int, log *zap.Logger) *GitHubAnalyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &GitHubAnalyzer{
		generator: generator,
		fetcher:   fetcher,
		threshold: threshold,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Analyze verifies the GitHub profile exists, samples its repositories and
// runs the analysis prompt. An unknown username is a hard error; rate limits
// and network failures degrade to an unverified analysis.
func (a *GitHubAnalyzer) Analyze(ctx context.Context, ref string, jd *JobDescription) (*StageResult, error) {
	if jd == nil || jd.Text() == "" {
		return nil, errors.New("processed job description is required")
	}

	username := UsernameFromRef(ref)
	if username == "" {
		return nil, errors.New("github username is required")
	}

	repoSummary, err := a.fetchRepoSummary(ctx, username)
	if err != nil {
		return nil, err
	}

	prompt := fillTemplate(githubAnalysisTemplate, map[string]string{
		"GITHUB_REF":   ref,
		"REPO_SUMMARY": repoSummary,
		"JD":           jd.Text(),
	})

	a.logger.Debug("github analysis request",
		zap.String("github_user", username),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	report, err := a.generator.GenerateContent(ctx, githubSystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("github analysis: %w", err)
	}

	a.logger.Debug("github analysis response",
		zap.String("github_user", username),
		zap.Int("response_length", utf8.RuneCountInString(report)),
		zap.String("response_preview", logger.TruncateForLog(report, a.maxLogLen)),
	)

	score, found := ExtractScore(report)

	result := &StageResult{
		Level:      LevelGitHub,
		Score:      score,
		MaxScore:   MaxScore,
		Threshold:  a.threshold,
		ScoreFound: found,
		Passed:     found && score >= a.threshold,
		Report:     report,
	}

	a.logger.Info("github analysis completed",
		zap.String("github_user", username),
		zap.Float64("score", result.Score),
		zap.Bool("score_found", result.ScoreFound),
		zap.Bool("passed", result.Passed),
		zap.Float64("threshold", result.Threshold),
	)

	return result, nil
}

// fetchRepoSummary verifies the profile and renders a short repository
// listing for the prompt. An unknown username aborts the stage; rate limits
// and transport failures are logged and produce an unverified summary.
func (a *GitHubAnalyzer) fetchRepoSummary(ctx context.Context, username string) (string, error) {
	if a.fetcher == nil {
		return unverifiedSummary, nil
	}

	user, err := a.fetcher.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return "", fmt.Errorf("github username %q does not exist: %w", username, err)
		}
		if errors.Is(err, github.ErrRateLimited) {
			a.logger.Warn("github api rate limited, skipping profile verification",
				zap.String("github_user", username),
			)
		} else {
			a.logger.Warn("github profile verification failed",
				zap.String("github_user", username),
				zap.Error(err),
			)
		}
		return unverifiedSummary, nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Verified profile: %s (%d public repositories, %d followers)\n",
		user.Login, user.PublicRepos, user.Followers)

	repos, err := a.fetcher.ListRepos(ctx, username)
	if err != nil {
		a.logger.Warn("listing github repositories failed",
			zap.String("github_user", username),
			zap.Error(err),
		)
		return strings.TrimSpace(builder.String()), nil
	}

	count := 0
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if count == maxRepoSummaryEntries {
			break
		}

		entry := repo.Name
		if repo.Language != "" {
			entry += fmt.Sprintf(" [%s]", repo.Language)
		}
		if repo.Stars > 0 {
			entry += fmt.Sprintf(" (%d stars)", repo.Stars)
		}
		if repo.Description != "" {
			entry += ": " + repo.Description
		}

		fmt.Fprintf(&builder, "- %s\n", entry)
		count++
	}

	return strings.TrimSpace(builder.String()), nil
}
