package translation

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/arabify/internal/cli"
)

// ErrEmptyResponse indicates the model returned no usable text. It is
// treated as transient and retried like a network failure.
var ErrEmptyResponse = errors.New("empty response from translation API")

// Provider translates a single English text to Modern Standard Arabic
type Provider interface {
	Translate(ctx context.Context, text string) (string, error)
}

// The prompt mirrors the one used to build the original Arabic FinQA
// dataset: keep numbers, special characters and equations untouched,
// return only the translated text.
const promptTemplate = `Translate the following English text into high-quality Modern Standard Arabic (MSA) with a focus on clarity, precise financial and mathematical terminology, and natural fluency for educational or reasoning-based datasets. Maintain all numbers, special characters, and equations exactly as in the original. Respond with only the translated Arabic text, nothing else.

Original English Text:
%s

Translated Arabic Text:`

// NewProvider creates the translation provider selected by the
// configuration, wrapped with the sqlite cache when one is configured.
func NewProvider(ctx context.Context, cfg *cli.Config) (Provider, error) {
	var provider Provider
	var err error

	switch cfg.Provider {
	case cli.ProviderGemini:
		provider, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	case cli.ProviderOpenAI:
		provider, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.ModelName)
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CachePath != "" {
		cache, err := OpenCache(cfg.CachePath)
		if err != nil {
			return nil, err
		}
		provider = NewCachedProvider(provider, cache)
	}
	return provider, nil
}
