package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/biomentor-ai/biomentor/db"
	"github.com/biomentor-ai/biomentor/internal/api"
	"github.com/biomentor-ai/biomentor/internal/config"
	"github.com/biomentor-ai/biomentor/internal/curriculum"
	"github.com/biomentor-ai/biomentor/internal/llm"
	"github.com/biomentor-ai/biomentor/internal/observability"
	"github.com/biomentor-ai/biomentor/internal/rag"
	"github.com/biomentor-ai/biomentor/internal/tutor"
)

const (
	dbPingTimeout       = 5 * time.Second
	otelShutdownTimeout = 5 * time.Second

	// Gemini free-tier quotas sit around 10 requests per minute, so the
	// orchestrator paces upstream calls slightly below that.
	generateInterval = 6 * time.Second
	generateBurst    = 2
)

// Setup creates and initializes the application. Call Close to release
// resources; on error everything already initialized is cleaned up.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, retErr error) {
	a := &App{Config: cfg, Logger: logger}

	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelShutdown = provideOtelShutdown(ctx, cfg, logger)

	// Vector retrieval needs both the database and the embedder
	// credential; anything less runs the in-memory keyword index.
	if cfg.VectorStoreEnabled() && cfg.GenerationEnabled() {
		pool, err := provideDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.DBPool = pool

		g, err := provideGenkit(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.Genkit = g
	}

	a.Retrieval = provideRetrieval(ctx, a, cfg, logger)
	a.Tutor = provideTutor(ctx, cfg, a.Retrieval, logger)

	a.Server = api.NewServer(api.Config{
		Logger:    logger.With("component", "api"),
		Tutor:     a.Tutor,
		Retrieval: a.Retrieval,
		Pool:      a.DBPool,
		RateBurst: cfg.RateBurst,
		Dev:       cfg.ServerHost == "127.0.0.1" || cfg.ServerHost == "localhost",
	})

	return a, nil
}

// Addr returns the HTTP listen address.
func (a *App) Addr() string {
	return fmt.Sprintf("%s:%d", a.Config.ServerHost, a.Config.ServerPort)
}

// provideOtelShutdown sets up OTLP trace export before Genkit
// initialization so the TracerProvider is ready when flows run.
func provideOtelShutdown(ctx context.Context, cfg *config.Config, logger *slog.Logger) func() {
	shutdown, err := observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: observability.DefaultServiceName,
	}, logger)
	if err != nil {
		logger.Warn("setting up trace export", "error", err)
		return func() {}
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// provideDBPool runs migrations and opens the PostgreSQL pool.
func provideDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideGenkit initializes Genkit with the Google AI plugin, which
// registers the Gemini embedder used by vector retrieval.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: cfg.GeminiAPIKey}),
	)
	if g == nil {
		return nil, errors.New("initializing genkit with googleai plugin")
	}
	return g, nil
}

// provideRetrieval builds the retrieval service over the compiled-in
// curriculum. Vector indexing failures degrade to keyword mode rather
// than failing startup, since retrieval must always be available.
func provideRetrieval(ctx context.Context, a *App, cfg *config.Config, logger *slog.Logger) *rag.Service {
	corpus := corpusChunks()
	opts := []rag.Option{
		rag.WithChunking(cfg.ChunkSize, cfg.ChunkOverlap),
		rag.WithDefaultTopK(cfg.TopK),
		rag.WithLogger(logger.With("component", "rag")),
	}

	if a.Genkit != nil && a.DBPool != nil {
		svc, err := provideVectorRetrieval(ctx, a, cfg, corpus, opts)
		if err == nil {
			logger.Info("vector retrieval initialized", "chunks", len(corpus))
			return svc
		}
		logger.Warn("vector retrieval unavailable, falling back to keyword mode", "error", err)
	}

	logger.Info("keyword retrieval initialized", "chunks", len(corpus))
	return rag.NewKeyword(corpus, opts...)
}

func provideVectorRetrieval(ctx context.Context, a *App, cfg *config.Config, corpus []rag.Chunk, opts []rag.Option) (*rag.Service, error) {
	store, err := rag.NewStore(a.DBPool, a.Logger.With("component", "rag.store"))
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	embedder := googlegenai.GoogleAIEmbedder(a.Genkit, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}

	svc, err := rag.NewVector(ctx, corpus, store, rag.NewEmbedFunc(embedder), opts...)
	if err != nil {
		return nil, fmt.Errorf("indexing corpus: %w", err)
	}
	return svc, nil
}

// provideTutor builds the tutor service. Without a usable API key the
// orchestrator stays nil and the tutor serves demo responses.
func provideTutor(ctx context.Context, cfg *config.Config, retrieval *rag.Service, logger *slog.Logger) *tutor.Service {
	tutorLogger := logger.With("component", "tutor")

	if !cfg.GenerationEnabled() {
		logger.Info("no Gemini API key configured, tutor running in demo mode")
		return tutor.NewService(nil, retrieval, tutorLogger)
	}

	gen, err := llm.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn("creating Gemini client failed, tutor running in demo mode", "error", err)
		return tutor.NewService(nil, retrieval, tutorLogger)
	}

	orch := llm.NewOrchestrator(gen, llm.NewTracker(), cfg.Model, cfg.FallbackModels,
		llm.WithRateLimiter(rate.NewLimiter(rate.Every(generateInterval), generateBurst)),
		llm.WithOrchestratorLogger(logger.With("component", "llm")),
	)

	return tutor.NewService(orch, retrieval, tutorLogger)
}

// corpusChunks flattens the curriculum into retrieval chunks.
func corpusChunks() []rag.Chunk {
	sources := curriculum.AllContentChunks()
	out := make([]rag.Chunk, 0, len(sources))
	for _, src := range sources {
		out = append(out, rag.Chunk{
			Content: src.Text,
			Metadata: rag.Metadata{
				TopicID:    src.TopicID,
				TopicName:  src.TopicName,
				Subtopic:   src.Subtopic,
				Difficulty: src.Difficulty,
				Source:     curriculum.SourceTag,
			},
		})
	}
	return out
}
