package interfaces

import "context"

// CompletionRequest carries a single system+user prompt pair for the model
// boundary. The builder issues exactly one request per section or blog
// generation and never retries on its own.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// CompletionClient is the external AI collaborator. Implementations perform
// one HTTP round trip and return the raw completion text. The caller owns
// JSON parsing and schema validation; a failed call should surface as an
// error, never as fabricated content.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
