package config

import "fmt"

// Validate checks all configuration values and returns the first problem
// found, wrapped around a package sentinel error.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model must not be empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder model must not be empty", ErrInvalidEmbedderModel)
	}

	if c.ChunkSize < 100 || c.ChunkSize > 10000 {
		return fmt.Errorf("%w: %d (must be 100-10000)", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: %d (must be 0 <= overlap < chunk size %d)",
			ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK < 1 || c.TopK > 20 {
		return fmt.Errorf("%w: %d (must be 1-20)", ErrInvalidTopK, c.TopK)
	}
	if c.MaxOutputTokens < 1 || c.MaxOutputTokens > 65536 {
		return fmt.Errorf("%w: %d (must be 1-65536)", ErrInvalidMaxOutputTokens, c.MaxOutputTokens)
	}

	if c.VectorStoreEnabled() {
		if c.PostgresPort < 1 || c.PostgresPort > 65535 {
			return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
		}
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidServerPort, c.ServerPort)
	}

	return nil
}
