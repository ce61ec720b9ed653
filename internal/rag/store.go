package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

// VectorDimension is the embedding width stored in the documents table.
// gemini-embedding-001 supports truncation to 768 dimensions via
// OutputDimensionality; the pgvector column in db/migrations matches.
const VectorDimension int32 = 768

// querier is the common interface satisfied by both *pgxpool.Pool and
// pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StoredChunk is a vector search row: the chunk plus its cosine distance
// from the query embedding (lower = closer).
type StoredChunk struct {
	Content  string
	Metadata Metadata
	Distance float64
}

// Store persists embedded curriculum chunks in PostgreSQL + pgvector.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	db     querier
	logger *slog.Logger
}

// NewStore creates a document store on top of an open pgx pool (or
// transaction). The documents table must already exist; see db/migrations.
func NewStore(db querier, logger *slog.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// ReplaceCorpus atomically swaps the stored corpus for the given chunks,
// embedding each one with embed. Called once at startup; the corpus is
// immutable afterwards.
func (s *Store) ReplaceCorpus(ctx context.Context, chunks []Chunk, embed EmbedFunc) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	for i, chunk := range chunks {
		embedding, err := embed(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", i, err)
		}

		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshaling metadata for chunk %d: %w", i, err)
		}

		vec := pgvector.NewVector(embedding)
		_, err = s.db.Exec(ctx,
			`INSERT INTO documents (id, topic_id, content, embedding, metadata)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), chunk.Metadata.TopicID, chunk.Content, &vec, metadataJSON,
		)
		if err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	s.logger.Info("vector corpus loaded", "chunks", len(chunks))
	return nil
}

// Search returns the topK nearest chunks by cosine distance, optionally
// restricted to one topic.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int, topicID string) ([]StoredChunk, error) {
	vec := pgvector.NewVector(embedding)

	var rows pgx.Rows
	var err error
	if topicID != "" {
		rows, err = s.db.Query(ctx,
			`SELECT content, metadata, embedding <=> $1 AS distance
			 FROM documents
			 WHERE topic_id = $2
			 ORDER BY distance
			 LIMIT $3`,
			&vec, topicID, topK,
		)
	} else {
		rows, err = s.db.Query(ctx,
			`SELECT content, metadata, embedding <=> $1 AS distance
			 FROM documents
			 ORDER BY distance
			 LIMIT $2`,
			&vec, topK,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var out []StoredChunk
	for rows.Next() {
		var sc StoredChunk
		var metadataJSON []byte
		if err := rows.Scan(&sc.Content, &metadataJSON, &sc.Distance); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if err := json.Unmarshal(metadataJSON, &sc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search rows: %w", err)
	}
	return out, nil
}

// Count reports how many chunks are stored.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
