package ai

import (
	"context"
	"fmt"

	"atlas/internal/config"
)

// NewProvider builds the provider selected by cfg. The returned close func is never nil.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (LLMProvider, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	case config.ProviderOpenAI:
		var opts []OpenAIOption
		if cfg.OpenAIEndpoint != "" {
			opts = append(opts, WithEndpoint(cfg.OpenAIEndpoint))
		}
		p, err := NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, opts...)
		if err != nil {
			return nil, func() {}, err
		}
		return p, func() {}, nil
	}
	return nil, func() {}, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
