package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API directly. It implements
// Generator and deliberately returns backend errors unwrapped so the
// orchestrator can read their rate-limit markers.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a Gemini-backed generator using the given
// API key.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate performs one generation call against the named model.
func (g *GeminiGenerator) Generate(ctx context.Context, model string, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.Config.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Config.Temperature))
	}
	if req.Config.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(req.Config.TopP))
	}
	if req.Config.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.Config.MaxOutputTokens
	}
	if req.Config.JSONOutput {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model %s returned an empty response", model)
	}
	return text, nil
}
