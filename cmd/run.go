package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akajammythakkar/hiring-framework-adk/internal/ai/gemini"
	"github.com/akajammythakkar/hiring-framework-adk/internal/github"
	"github.com/akajammythakkar/hiring-framework-adk/internal/hiring"
	"github.com/akajammythakkar/hiring-framework-adk/internal/logger"
	"github.com/akajammythakkar/hiring-framework-adk/internal/pipeline"
	"github.com/akajammythakkar/hiring-framework-adk/internal/report"
	"github.com/akajammythakkar/hiring-framework-adk/internal/secrets"
)

const (
	PromptYes    = "Yes"
	PromptNo     = "No"
	PromptRefine = "Refine with feedback"
)

var errExit = errors.New("exit requested")

var rubricPrompt = promptui.Select{
	Label: "Accept this rubric?",
	Items: []string{PromptYes, PromptRefine, PromptNo},
}

var nextResumePrompt = promptui.Select{
	Label: "Evaluate another resume?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the evaluation pipeline for a job description and resumes",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("jd", "", `path to the job description file ("-" for stdin)`)
	runCmd.Flags().StringArray("resume", nil, "path to a resume file (repeatable)")
	runCmd.Flags().String("github", "", "github profile URL or username, overriding the one found in the resume")
	runCmd.Flags().BoolP("auto-approve", "y", false, "accept the generated rubric and skip confirmation prompts")
	runCmd.Flags().Bool("skip-github", false, "skip the github analysis stage")
	runCmd.Flags().Float64("level3-score", -1, "externally assessed coding score (0-10)")
	runCmd.Flags().String("level3-notes", "", "notes attached to the coding assessment record")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hiring pipeline", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	framework, err := buildFramework(ctx, config, logger)
	if err != nil {
		logger.Fatal(
			"building the pipeline",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	jdText, err := readJD(cmd)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	if _, err := framework.ProcessJD(ctx, jdText); err != nil {
		logger.Fatal("processing the job description", zap.Error(err))
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"

	if err := approveRubric(ctx, framework, autoApprove); err != nil {
		if errors.Is(err, errExit) {
			logger.Info("exiting", zap.String("reason", "rubric rejected"))
			return
		}
		logger.Fatal("preparing the rubric", zap.Error(err))
	}

	resumes, _ := cmd.Flags().GetStringArray("resume")

	for {
		resumeText, err := nextResume(&resumes, autoApprove)
		if err != nil {
			if errors.Is(err, errExit) {
				break
			}
			logger.Fatal("reading a resume", zap.Error(err))
		}

		if err := evaluateCandidate(ctx, cmd, framework, config, logger, resumeText); err != nil {
			logger.Fatal("evaluating a candidate", zap.Error(err))
		}

		if len(resumes) == 0 && !promptAnotherResume(autoApprove) {
			break
		}
	}

	fmt.Print(report.Evaluations(framework.History()))
}

func buildFramework(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Framework, error) {
	if config == nil || config.AI == nil || config.AI.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", config.AI.Gemini.Model),
		zap.Int("ai_retry_attempts", config.AI.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	ghClient := github.New(logger, resolveGitHubToken(config, logger))

	maxLogLength := config.AI.Gemini.MaxLogLength
	thresholds := hiring.Thresholds{
		Level1: config.Thresholds.Level1,
		Level2: config.Thresholds.Level2,
		Level3: config.Thresholds.Level3,
	}
	weights := hiring.Weights{
		Resume: config.Weights.Resume,
		GitHub: config.Weights.GitHub,
		Coding: config.Weights.Coding,
	}

	return pipeline.New(pipeline.Deps{
		JD:      hiring.NewJDProcessor(generator, maxLogLength, logger),
		Resumes: hiring.NewResumeEvaluator(generator, thresholds.Level1, maxLogLength, logger),
		GitHub:  hiring.NewGitHubAnalyzer(generator, ghClient, thresholds.Level2, maxLogLength, logger),
		Verdict: hiring.NewVerdictAgent(generator, weights, maxLogLength, logger),
		Logger:  logger,
	}), nil
}

func resolveGitHubToken(config *Config, logger *zap.Logger) string {
	if config.GitHub == nil || strings.TrimSpace(config.GitHub.TokenFile) == "" {
		logger.Debug("no github token configured, using unauthenticated requests")
		return ""
	}

	token, err := secrets.Load(secrets.Source{
		Name: "github token",
		File: config.GitHub.TokenFile,
	})
	if err != nil {
		logger.Warn("loading github token failed, using unauthenticated requests", zap.Error(err))
		return ""
	}

	return token
}

func readJD(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("jd")
	if path == "" {
		return "", errors.New("the --jd flag is required")
	}

	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// approveRubric generates the rubric and loops through refinement rounds
// until the user accepts it. errExit means the rubric was rejected.
func approveRubric(ctx context.Context, framework *pipeline.Framework, autoApprove bool) error {
	rubric, err := framework.GenerateRubric(ctx)
	if err != nil {
		return err
	}

	for {
		fmt.Printf("\n%s\n\n", rubric)

		if autoApprove {
			return nil
		}

		_, action, err := rubricPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptYes:
			return nil
		case PromptNo:
			return errExit
		case PromptRefine:
			feedback, err := (&promptui.Prompt{Label: "Feedback"}).Run()
			if err != nil {
				return err
			}
			rubric, err = framework.RefineRubric(ctx, feedback)
			if err != nil {
				return err
			}
		}
	}
}

// nextResume pops the next resume path from the flag list or asks for one
// interactively. errExit means there is nothing left to evaluate.
func nextResume(resumes *[]string, autoApprove bool) (string, error) {
	path := ""
	if len(*resumes) > 0 {
		path = (*resumes)[0]
		*resumes = (*resumes)[1:]
	} else {
		if autoApprove {
			return "", errExit
		}
		var err error
		path, err = (&promptui.Prompt{Label: "Path to the resume file"}).Run()
		if err != nil {
			return "", err
		}
	}

	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func promptAnotherResume(autoApprove bool) bool {
	if autoApprove {
		return false
	}

	_, action, err := nextResumePrompt.Run()
	if err != nil {
		return false
	}
	return action == PromptYes
}

// evaluateCandidate runs all stages for one resume and prints the verdict.
func evaluateCandidate(ctx context.Context, cmd *cobra.Command, framework *pipeline.Framework, config *Config, logger *zap.Logger, resumeText string) error {
	l1, err := framework.EvaluateResume(ctx, resumeText)
	if err != nil {
		return err
	}

	profile := framework.Profile()
	fmt.Printf("\nLevel 1 (%s): %.1f/%.0f - %s\n", profile.CandidateName, l1.Score, l1.MaxScore, passLabel(l1.Passed))

	skipGitHub, _ := cmd.Flags().GetBool("skip-github")
	if skipGitHub {
		logger.Info("skipping github analysis", zap.String("reason", "skip-github flag is set"))
		return nil
	}

	ref, _ := cmd.Flags().GetString("github")
	l2, err := framework.AnalyzeGitHub(ctx, ref)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoGitHubUser) {
			logger.Warn("skipping github analysis",
				zap.String("candidate", profile.CandidateName),
				zap.String("reason", "no github username found in resume"),
				zap.String("hint", "pass one with the --github flag"),
			)
			return nil
		}
		return err
	}

	fmt.Printf("Level 2 (%s): %.1f/%.0f - %s\n", profile.CandidateName, l2.Score, l2.MaxScore, passLabel(l2.Passed))

	if score, _ := cmd.Flags().GetFloat64("level3-score"); score >= 0 {
		notes, _ := cmd.Flags().GetString("level3-notes")
		l3, err := framework.SetLevel3(score, config.Thresholds.Level3, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Level 3 (%s): %.1f/%.0f - %s\n", profile.CandidateName, l3.Score, l3.MaxScore, passLabel(l3.Passed))
	}

	verdict, err := framework.FinalVerdict(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", report.VerdictBanner(verdict))
	return nil
}

func passLabel(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}
