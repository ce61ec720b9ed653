package config

import (
	"errors"
	"strings"
	"testing"
)

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		FallbackModels:  DefaultFallbackModels,
		EmbedderModel:   DefaultEmbedderModel,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		TopK:            DefaultTopK,
		MaxOutputTokens: 2048,
		ServerHost:      "127.0.0.1",
		ServerPort:      8000,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Model = "" },
			wantErr: ErrInvalidModelName,
		},
		{
			name:    "empty embedder model",
			mutate:  func(c *Config) { c.EmbedderModel = "" },
			wantErr: ErrInvalidEmbedderModel,
		},
		{
			name:    "chunk size too small",
			mutate:  func(c *Config) { c.ChunkSize = 10 },
			wantErr: ErrInvalidChunkSize,
		},
		{
			name:    "chunk size too large",
			mutate:  func(c *Config) { c.ChunkSize = 100000 },
			wantErr: ErrInvalidChunkSize,
		},
		{
			name:    "overlap negative",
			mutate:  func(c *Config) { c.ChunkOverlap = -1 },
			wantErr: ErrInvalidChunkOverlap,
		},
		{
			name:    "overlap >= chunk size",
			mutate:  func(c *Config) { c.ChunkOverlap = c.ChunkSize },
			wantErr: ErrInvalidChunkOverlap,
		},
		{
			name:    "top k zero",
			mutate:  func(c *Config) { c.TopK = 0 },
			wantErr: ErrInvalidTopK,
		},
		{
			name:    "top k too large",
			mutate:  func(c *Config) { c.TopK = 100 },
			wantErr: ErrInvalidTopK,
		},
		{
			name:    "max output tokens zero",
			mutate:  func(c *Config) { c.MaxOutputTokens = 0 },
			wantErr: ErrInvalidMaxOutputTokens,
		},
		{
			name: "postgres port out of range when vector store enabled",
			mutate: func(c *Config) {
				c.PostgresHost = "localhost"
				c.PostgresPort = 0
			},
			wantErr: ErrInvalidPostgresPort,
		},
		{
			name: "postgres port ignored when vector store disabled",
			mutate: func(c *Config) {
				c.PostgresHost = ""
				c.PostgresPort = 0
			},
			wantErr: nil,
		},
		{
			name:    "server port out of range",
			mutate:  func(c *Config) { c.ServerPort = 70000 },
			wantErr: ErrInvalidServerPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want errors.Is(%v)", err, tt.wantErr)
			}
		})
	}
}

func TestGenerationEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty key", "", false},
		{"placeholder key", "your-gemini-api-key-here", false},
		{"real key", "AIzaSyFakeKeyForTests", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			cfg.GeminiAPIKey = tt.key
			if got := cfg.GenerationEnabled(); got != tt.want {
				t.Errorf("GenerationEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON_MasksSecrets(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.GeminiAPIKey = "super-secret-api-key-12345"
	cfg.PostgresPassword = "hunter2"

	data, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}

	out := string(data)
	if strings.Contains(out, "super-secret-api-key-12345") {
		t.Error("API key leaked in JSON output")
	}
	if strings.Contains(out, "hunter2") {
		t.Error("password leaked in JSON output")
	}
	if !strings.Contains(out, maskedValue) {
		t.Error("masked placeholder missing from JSON output")
	}
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"empty", "", ""},
		{"short fully masked", "abc", maskedValue},
		{"eight chars fully masked", "12345678", maskedValue},
		{"long keeps edges", "my_long_secret_key_123", "my<" + maskedValue + ">23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := maskSecret(tt.secret); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.secret, got, tt.want)
			}
		})
	}
}

func TestPostgresConnectionString_QuotesPassword(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.PostgresHost = "localhost"
	cfg.PostgresPort = 5432
	cfg.PostgresUser = "biomentor"
	cfg.PostgresPassword = "pass word's"
	cfg.PostgresDBName = "biomentor"
	cfg.PostgresSSLMode = "disable"

	dsn := cfg.PostgresConnectionString()
	if !strings.Contains(dsn, `password='pass word\'s'`) {
		t.Errorf("password not quoted correctly: %s", dsn)
	}
}
