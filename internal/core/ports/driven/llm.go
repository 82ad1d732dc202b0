package driven

import "context"

// LLMService provides language model capabilities for agents.
// This is an optional service - when nil, agents answer from
// retrieval alone.
//
// Implementations may include:
//   - OpenAI (and OpenAI-compatible inference servers)
//   - Anthropic (Claude)
type LLMService interface {
	// Generate produces a completion for a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*Generation, error)

	// Embed generates a vector embedding for the given text.
	// Backends without an embedding model fail with
	// domain.ErrEmbeddingUnavailable.
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request, used at startup before committing to LLM features.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Generation is the result of a Generate call.
type Generation struct {
	// Text is the generated completion.
	Text string

	// Confidence is the backend's confidence in [0,1]. Zero means
	// the backend reports none; callers choose their own default.
	Confidence float64
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
