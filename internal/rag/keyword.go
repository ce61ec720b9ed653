package rag

import (
	"context"
	"sort"
	"strings"
)

// verbatimBonus is added when the whole query appears as a substring of a
// chunk; metadataBonus is added once per query term found in the chunk's
// topic/subtopic metadata text.
const (
	verbatimBonus = 10
	metadataBonus = 3
)

// keywordIndex scores chunks by raw term frequency. It is pure in-process
// state, always available, and the fallback for every vector failure.
type keywordIndex struct {
	chunks []Chunk
}

// newKeywordIndex builds an index over paragraph-level chunks.
func newKeywordIndex(chunks []Chunk) *keywordIndex {
	return &keywordIndex{chunks: chunks}
}

// queryTerms lowercases the query and keeps whitespace-separated terms
// longer than two characters. No stemming, no stop-word list.
func queryTerms(query string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > 2 {
			terms = append(terms, t)
		}
	}
	return terms
}

// Retrieve scores every candidate chunk against the query and returns the
// topK best, sorted descending by relevance with corpus order breaking
// ties. Chunks that match nothing are excluded. Never returns an error.
func (k *keywordIndex) Retrieve(_ context.Context, query string, cfg searchConfig) ([]Hit, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		// No eligible terms (empty query or all terms too short): nothing
		// can score, so the result is empty rather than an error.
		return nil, nil
	}
	queryLower := strings.ToLower(query)

	var hits []Hit
	for _, chunk := range k.chunks {
		if cfg.topic != "" && chunk.Metadata.TopicID != cfg.topic {
			continue
		}

		contentLower := strings.ToLower(chunk.Content)
		score := 0
		for _, term := range terms {
			score += strings.Count(contentLower, term)
		}
		if strings.Contains(contentLower, queryLower) {
			score += verbatimBonus
		}

		metaText := strings.ToLower(chunk.Metadata.TopicName + " " + chunk.Metadata.Subtopic)
		for _, term := range terms {
			if strings.Contains(metaText, term) {
				score += metadataBonus
			}
		}

		if score == 0 {
			continue
		}

		termCount := len(terms)
		if termCount < 1 {
			termCount = 1
		}
		relevance := float64(score) / float64(termCount)
		if relevance > 1.0 {
			relevance = 1.0
		}

		hits = append(hits, Hit{
			Content:   chunk.Content,
			Metadata:  chunk.Metadata,
			Relevance: relevance,
		})
	}

	// Stable sort keeps corpus order for equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})

	if cfg.topK > 0 && len(hits) > cfg.topK {
		hits = hits[:cfg.topK]
	}
	return hits, nil
}
