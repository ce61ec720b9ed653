package rag

import (
	"context"
	"fmt"
	"log/slog"
)

// Strategy identifies which retrieval backend a Service uses.
type Strategy string

const (
	// StrategyKeyword scores chunks by in-memory term matching.
	StrategyKeyword Strategy = "keyword"
	// StrategyVector searches the pgvector store by embedding similarity.
	StrategyVector Strategy = "vector"
)

// index is the common retrieval surface shared by both strategies.
type index interface {
	Retrieve(ctx context.Context, query string, cfg searchConfig) ([]Hit, error)
}

// Service is the retrieval engine. The strategy is chosen once at
// construction and never changes; the vector strategy still degrades to
// keyword scoring per call when embedding or search fails at runtime.
//
// Service is safe for concurrent use by multiple goroutines.
type Service struct {
	strategy   Strategy
	index      index
	splitter   *Splitter
	defaultTop int
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*options)

type options struct {
	chunkSize    int
	chunkOverlap int
	defaultTopK  int
	logger       *slog.Logger
}

// WithChunking overrides the splitter's chunk size and overlap.
func WithChunking(size, overlap int) Option {
	return func(o *options) {
		o.chunkSize = size
		o.chunkOverlap = overlap
	}
}

// WithDefaultTopK sets the result cap used when a search does not
// specify its own.
func WithDefaultTopK(k int) Option {
	return func(o *options) {
		if k > 0 {
			o.defaultTopK = k
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		defaultTopK:  DefaultTopK,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewKeyword builds a keyword-strategy service: documents are split on
// paragraph boundaries and held in memory.
func NewKeyword(docs []Chunk, opts ...Option) *Service {
	o := buildOptions(opts)
	splitter := NewSplitter(o.chunkSize, o.chunkOverlap)

	var chunks []Chunk
	for _, doc := range docs {
		for i, content := range SplitParagraphs(doc.Content) {
			md := doc.Metadata
			md.ChunkIndex = i
			chunks = append(chunks, Chunk{Content: content, Metadata: md})
		}
	}

	o.logger.Info("retrieval index ready",
		"strategy", StrategyKeyword,
		"documents", len(docs),
		"chunks", len(chunks))

	return &Service{
		strategy:   StrategyKeyword,
		index:      newKeywordIndex(chunks),
		splitter:   splitter,
		defaultTop: o.defaultTopK,
		logger:     o.logger,
	}
}

// NewVector builds a vector-strategy service: documents are split with
// the recursive splitter, embedded, and loaded into the pgvector store.
// The same chunks also feed an in-memory keyword index used as a
// per-call fallback when the vector path fails at query time.
func NewVector(ctx context.Context, docs []Chunk, store *Store, embed EmbedFunc, opts ...Option) (*Service, error) {
	o := buildOptions(opts)
	splitter := NewSplitter(o.chunkSize, o.chunkOverlap)

	var chunks []Chunk
	for _, doc := range docs {
		for i, content := range splitter.Split(doc.Content) {
			md := doc.Metadata
			md.ChunkIndex = i
			chunks = append(chunks, Chunk{Content: content, Metadata: md})
		}
	}

	if err := store.ReplaceCorpus(ctx, chunks, embed); err != nil {
		return nil, fmt.Errorf("loading vector corpus: %w", err)
	}

	o.logger.Info("retrieval index ready",
		"strategy", StrategyVector,
		"documents", len(docs),
		"chunks", len(chunks))

	return &Service{
		strategy:   StrategyVector,
		index:      newVectorIndex(store, embed, newKeywordIndex(chunks), o.logger),
		splitter:   splitter,
		defaultTop: o.defaultTopK,
		logger:     o.logger,
	}, nil
}

// Strategy reports which retrieval backend was selected at construction.
func (s *Service) Strategy() Strategy { return s.strategy }

// Retrieve returns the most relevant chunks for the query, best first.
func (s *Service) Retrieve(ctx context.Context, query string, opts ...SearchOption) ([]Hit, error) {
	cfg := buildSearchConfig(s.defaultTop, opts)
	return s.index.Retrieve(ctx, query, cfg)
}

// ContextString retrieves for the query and assembles the hits into a
// prompt-ready context block. Retrieval errors degrade to the
// no-context sentinel rather than failing the caller.
func (s *Service) ContextString(ctx context.Context, query string, opts ...SearchOption) string {
	hits, err := s.Retrieve(ctx, query, opts...)
	if err != nil {
		s.logger.Warn("retrieval failed, answering without curriculum context", "error", err)
		return NoContextSentinel
	}
	return FormatContext(hits)
}
