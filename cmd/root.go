package cmd

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hiring-pipeline"

	defaultModel        = "gemini-2.0-flash"
	defaultMaxRetries   = 3
	defaultMaxLogLength = 200
)

type Config struct {
	AI         *AIConfig        `mapstructure:"ai"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Weights    WeightsConfig    `mapstructure:"weights"`
	GitHub     *GitHubConfig    `mapstructure:"github"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ThresholdsConfig struct {
	Level1 float64 `mapstructure:"level1"`
	Level2 float64 `mapstructure:"level2"`
	Level3 float64 `mapstructure:"level3"`
}

// WeightsConfig holds the composite score weights. In the config file it can
// be either a nested mapping or a "resume,github,coding" string.
type WeightsConfig struct {
	Resume float64 `mapstructure:"resume"`
	GitHub float64 `mapstructure:"github"`
	Coding float64 `mapstructure:"coding"`
}

type GitHubConfig struct {
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hiring-pipeline is a cli for multi-stage LLM-based candidate evaluation",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"github.token-file":      "GITHUB_TOKEN_FILE",
		"thresholds.level1":      "LEVEL_1_THRESHOLD",
		"thresholds.level2":      "LEVEL_2_THRESHOLD",
		"thresholds.level3":      "LEVEL_3_THRESHOLD",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("ai.gemini.model", defaultModel)
	viper.SetDefault("ai.gemini.max-retries", defaultMaxRetries)
	viper.SetDefault("ai.gemini.max-log-length", defaultMaxLogLength)
	viper.SetDefault("thresholds.level1", 7.0)
	viper.SetDefault("thresholds.level2", 6.0)
	viper.SetDefault("thresholds.level3", 8.0)
	viper.SetDefault("weights.resume", 0.3)
	viper.SetDefault("weights.github", 0.3)
	viper.SetDefault("weights.coding", 0.4)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is "+app+".yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A .env file is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Everything has a default, so a missing config file is fine unless
		// one was requested explicitly.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		DecodeHook:       weightsDecodeHook(),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

// weightsDecodeHook converts a "resume,github,coding" string into a
// WeightsConfig.
func weightsDecodeHook() mapstructure.DecodeHookFunc {
	weightsType := reflect.TypeOf(WeightsConfig{})

	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != weightsType {
			return data, nil
		}

		raw, _ := data.(string)
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("weights must be three comma-separated numbers, got %q", raw)
		}

		var values [3]float64
		for i, part := range parts {
			value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing weight %q: %w", part, err)
			}
			values[i] = value
		}

		return WeightsConfig{Resume: values[0], GitHub: values[1], Coding: values[2]}, nil
	}
}
