package rag

// Metadata identifies where a chunk came from in the curriculum.
type Metadata struct {
	TopicID    string `json:"topic_id"`
	TopicName  string `json:"topic_name"`
	Subtopic   string `json:"subtopic"`
	Difficulty string `json:"difficulty"`
	Source     string `json:"source"`
	ChunkIndex int    `json:"chunk_index"`
}

// Chunk is the smallest retrievable unit of curriculum text. Chunks are
// created once at service initialization and are immutable afterwards.
type Chunk struct {
	Content  string
	Metadata Metadata
}

// Hit is a single retrieval result. Relevance is normalized to [0, 1];
// higher means more relevant. Hits returned from one retrieval call are
// sorted descending by Relevance, ties broken by corpus order.
type Hit struct {
	Content   string   `json:"content"`
	Metadata  Metadata `json:"metadata"`
	Relevance float64  `json:"relevance_score"`
}

// SearchOption configures a retrieval call using the functional options
// pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK  int
	topic string
}

// WithTopK sets the maximum number of hits to return. Zero or negative
// values leave the caller's default in place.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithTopic restricts results to chunks whose metadata topic ID matches.
func WithTopic(topicID string) SearchOption {
	return func(c *searchConfig) {
		c.topic = topicID
	}
}

func buildSearchConfig(defaultTopK int, opts []SearchOption) searchConfig {
	cfg := searchConfig{topK: defaultTopK}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
