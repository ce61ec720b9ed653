package rag

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"google.golang.org/genai"
)

// EmbedFunc converts text to an embedding vector of VectorDimension floats.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// NewEmbedFunc adapts a genkit embedder into an EmbedFunc, requesting
// truncated output so the vector fits the documents table column.
func NewEmbedFunc(embedder ai.Embedder) EmbedFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		dim := VectorDimension
		resp, err := embedder.Embed(ctx, &ai.EmbedRequest{
			Input: []*ai.Document{ai.DocumentFromText(text, nil)},
			Options: &genai.EmbedContentConfig{
				OutputDimensionality: &dim,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("embedding text: %w", err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("embedder returned no embeddings")
		}
		embedding := resp.Embeddings[0].Embedding
		if len(embedding) != int(VectorDimension) {
			return nil, fmt.Errorf("unexpected embedding dimension %d, want %d", len(embedding), VectorDimension)
		}
		return embedding, nil
	}
}
