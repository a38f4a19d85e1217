package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider translates text using the Gemini API
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed translation provider
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Translate sends one translation prompt and returns the model output
func (p *GeminiProvider) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, text)

	// Low temperature keeps terminology and numbers stable
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", ErrEmptyResponse
	}
	return translated, nil
}
