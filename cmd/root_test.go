package cmd

import (
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfig(t *testing.T, settings map[string]any) *Config {
	t.Helper()

	config := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		DecodeHook:       weightsDecodeHook(),
		WeaklyTypedInput: true,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(settings))

	return config
}

func TestDecodeConfig(t *testing.T) {
	config := decodeConfig(t, map[string]any{
		"ai": map[string]any{
			"provider": "gemini",
			"gemini": map[string]any{
				"api-key-file": "/run/secrets/gemini",
				"model":        "gemini-2.0-flash",
				"max-retries":  "5",
			},
		},
		"thresholds": map[string]any{"level1": 7.5, "level2": 6, "level3": 8},
		"weights":    map[string]any{"resume": 0.3, "github": 0.3, "coding": 0.4},
		"github":     map[string]any{"token-file": "/run/secrets/github"},
	})

	require.NotNil(t, config.AI)
	require.NotNil(t, config.AI.Gemini)
	assert.Equal(t, "/run/secrets/gemini", config.AI.Gemini.APIKeyFile)
	assert.Equal(t, 5, config.AI.Gemini.MaxRetries)
	assert.Equal(t, 7.5, config.Thresholds.Level1)
	assert.Equal(t, 0.4, config.Weights.Coding)
	assert.Equal(t, "/run/secrets/github", config.GitHub.TokenFile)
}

func TestDecodeConfigWeightsString(t *testing.T) {
	config := decodeConfig(t, map[string]any{
		"weights": "0.5, 0.5, 0",
	})

	assert.Equal(t, 0.5, config.Weights.Resume)
	assert.Equal(t, 0.5, config.Weights.GitHub)
	assert.Zero(t, config.Weights.Coding)
}

func TestDecodeConfigWeightsStringInvalid(t *testing.T) {
	config := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     config,
		DecodeHook: weightsDecodeHook(),
	})
	require.NoError(t, err)

	err = decoder.Decode(map[string]any{"weights": "0.5,0.5"})
	require.Error(t, err)
}
