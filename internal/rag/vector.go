package rag

import (
	"context"
	"log/slog"
)

// vectorIndex retrieves by embedding similarity against the pgvector
// store, degrading to the keyword index when embedding or search fails
// at query time.
type vectorIndex struct {
	store    *Store
	embed    EmbedFunc
	fallback *keywordIndex
	logger   *slog.Logger
}

func newVectorIndex(store *Store, embed EmbedFunc, fallback *keywordIndex, logger *slog.Logger) *vectorIndex {
	return &vectorIndex{store: store, embed: embed, fallback: fallback, logger: logger}
}

func (v *vectorIndex) Retrieve(ctx context.Context, query string, cfg searchConfig) ([]Hit, error) {
	embedding, err := v.embed(ctx, query)
	if err != nil {
		v.logger.Warn("query embedding failed, falling back to keyword search", "error", err)
		return v.fallback.Retrieve(ctx, query, cfg)
	}

	stored, err := v.store.Search(ctx, embedding, cfg.topK, cfg.topic)
	if err != nil {
		v.logger.Warn("vector search failed, falling back to keyword search", "error", err)
		return v.fallback.Retrieve(ctx, query, cfg)
	}

	hits := make([]Hit, 0, len(stored))
	for _, sc := range stored {
		hits = append(hits, Hit{
			Content:   sc.Content,
			Metadata:  sc.Metadata,
			Relevance: clamp01(1 - sc.Distance),
		})
	}
	return hits, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
