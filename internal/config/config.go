// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (BIOMENTOR_* plus GEMINI_API_KEY / DATABASE_URL)
//  2. Config file (~/.biomentor/config.yaml or ./config.yaml)
//  3. Default values
//
// Categories:
//   - Generation: primary Gemini model, ordered fallback models
//   - Retrieval: embedder model, chunk size/overlap, default top-K
//   - Storage: PostgreSQL connection for the vector store (optional;
//     when absent the retrieval layer runs in keyword mode)
//   - Server: HTTP listen address, rate-limit burst
//   - Observability: optional OTLP trace endpoint
//
// Sensitive values (API key, password) are masked in MarshalJSON/String.
// Validation uses sentinel errors so callers can errors.Is() on them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidModelName indicates the primary model name is empty.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates the embedder model name is empty.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidChunkSize indicates the chunk size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidChunkOverlap indicates the overlap is negative or >= chunk size.
	ErrInvalidChunkOverlap = errors.New("invalid chunk overlap")

	// ErrInvalidTopK indicates the default top-K is out of range.
	ErrInvalidTopK = errors.New("invalid top k")

	// ErrInvalidMaxOutputTokens indicates the output token cap is out of range.
	ErrInvalidMaxOutputTokens = errors.New("invalid max output tokens")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidServerPort indicates the HTTP port is out of range.
	ErrInvalidServerPort = errors.New("invalid server port")
)

const (
	// DefaultModel is the primary generation model.
	DefaultModel = "gemini-2.5-flash"

	// DefaultEmbedderModel is the Gemini embedder used for vector retrieval.
	DefaultEmbedderModel = "gemini-embedding-001"

	// DefaultChunkSize is the target chunk length for vector-mode splitting.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the overlap between adjacent vector-mode chunks.
	DefaultChunkOverlap = 200

	// DefaultTopK is the default number of retrieval hits per query.
	DefaultTopK = 5
)

// DefaultFallbackModels is the ordered fallback list used when the primary
// model is rate-limited or quota-exhausted.
var DefaultFallbackModels = []string{"gemini-2.0-flash-lite", "gemini-2.5-flash-lite"}

// Config stores application configuration.
// SECURITY: sensitive fields are masked in MarshalJSON; update it when
// adding new secrets.
type Config struct {
	// Generation configuration
	GeminiAPIKey   string   `mapstructure:"gemini_api_key" json:"gemini_api_key"` // SENSITIVE: masked in MarshalJSON
	Model          string   `mapstructure:"model" json:"model"`
	FallbackModels []string `mapstructure:"fallback_models" json:"fallback_models"`

	// Retrieval configuration
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`
	ChunkSize     int    `mapstructure:"chunk_size" json:"chunk_size"`
	ChunkOverlap  int    `mapstructure:"chunk_overlap" json:"chunk_overlap"`
	TopK          int    `mapstructure:"top_k" json:"top_k"`

	// Generation limits
	MaxOutputTokens int `mapstructure:"max_output_tokens" json:"max_output_tokens"`

	// Vector store (optional; empty host disables vector mode)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// HTTP server
	ServerHost string `mapstructure:"server_host" json:"server_host"`
	ServerPort int    `mapstructure:"server_port" json:"server_port"`
	RateBurst  int    `mapstructure:"rate_burst" json:"rate_burst"`

	// Observability (optional OTLP trace endpoint, e.g. "localhost:4318")
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".biomentor")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults + env carry the load.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model", DefaultModel)
	v.SetDefault("fallback_models", DefaultFallbackModels)
	v.SetDefault("embedder_model", DefaultEmbedderModel)
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("chunk_overlap", DefaultChunkOverlap)
	v.SetDefault("top_k", DefaultTopK)
	v.SetDefault("max_output_tokens", 2048)

	// Vector store is opt-in: no default host.
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "biomentor")
	v.SetDefault("postgres_db_name", "biomentor")
	v.SetDefault("postgres_ssl_mode", "disable")

	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 8000)
	v.SetDefault("rate_burst", 60)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("model", "BIOMENTOR_MODEL")
	mustBind("embedder_model", "BIOMENTOR_EMBEDDER_MODEL")
	mustBind("postgres_host", "BIOMENTOR_POSTGRES_HOST")
	mustBind("postgres_password", "BIOMENTOR_POSTGRES_PASSWORD")
	mustBind("server_host", "BIOMENTOR_SERVER_HOST")
	mustBind("server_port", "BIOMENTOR_SERVER_PORT")
	mustBind("rate_burst", "BIOMENTOR_RATE_BURST")
	mustBind("otlp_endpoint", "BIOMENTOR_OTLP_ENDPOINT")
	mustBind("log_level", "BIOMENTOR_LOG_LEVEL")
	mustBind("log_json", "BIOMENTOR_LOG_JSON")
}

// GenerationEnabled reports whether a live generation backend is
// configured. When false the tutor runs entirely on demo responses.
func (c *Config) GenerationEnabled() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != "your-gemini-api-key-here"
}

// VectorStoreEnabled reports whether the pgvector-backed store is
// configured. Vector retrieval additionally needs GenerationEnabled for
// the embedder credential.
func (c *Config) VectorStoreEnabled() bool {
	return c.PostgresHost != ""
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging. Secrets of 8 chars or
// fewer are fully masked to prevent substring matching; longer secrets keep
// the first and last two characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.GeminiAPIKey = maskSecret(a.GeminiAPIKey)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
