// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService provides text generation against a hosted or local model
// endpoint. The booking pipeline uses it twice per run: once with a
// deterministic setting for symptom classification and once with a creative
// setting for the explanation.
//
// Implementations may include:
//   - Together AI (Mixtral and friends)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Called before a booking starts so an unreachable model
	// fails fast instead of partway through the pipeline.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	// It is always transmitted, including zero: the symptom classifier
	// depends on an explicit 0.0 rather than the provider default.
	Temperature float64
}
