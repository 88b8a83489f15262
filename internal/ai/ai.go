package ai

import "context"

// Generator produces a free-form text completion for a system instruction and
// a user prompt. Implementations are provider-specific.
type Generator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}
