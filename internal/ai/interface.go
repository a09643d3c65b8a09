package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations are constructed explicitly and injected, so tests can swap in a fake.
type LLMProvider interface {
	// GenerateText sends prompt to the model and returns its raw text reply.
	// The reply is untrusted and must be parsed by the caller.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
