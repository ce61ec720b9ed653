package api

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biomentor-ai/biomentor/internal/rag"
	"github.com/biomentor-ai/biomentor/internal/tutor"
)

const (
	defaultRateRPS   = 10
	defaultRateBurst = 60
)

// Config carries everything the HTTP surface needs. Tutor, Retrieval,
// and Logger are required; Pool is optional (keyword-only deployments
// have no database).
type Config struct {
	Logger    *slog.Logger
	Tutor     *tutor.Service
	Retrieval *rag.Service
	Pool      *pgxpool.Pool

	// CORSOrigins lists allowed browser origins. Empty disables CORS.
	CORSOrigins []string
	// TrustProxy enables X-Real-IP / X-Forwarded-For client addressing.
	TrustProxy bool
	// Dev relaxes security headers meant for HTTPS deployments.
	Dev bool

	// RateRPS / RateBurst configure the per-IP limiter. Zero values use
	// the defaults.
	RateRPS   float64
	RateBurst int
}

// Server is the HTTP front of the tutoring backend.
type Server struct {
	logger     *slog.Logger
	tutor      *tutor.Service
	retrieval  *rag.Service
	pool       *pgxpool.Pool
	limiter    *rateLimiter
	trustProxy bool
	dev        bool
	cors       []string
}

// NewServer wires the handlers and middleware stack. The caller mounts
// Handler() on an http.Server.
func NewServer(cfg Config) *Server {
	rps := cfg.RateRPS
	if rps <= 0 {
		rps = defaultRateRPS
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		logger:     logger,
		tutor:      cfg.Tutor,
		retrieval:  cfg.Retrieval,
		pool:       cfg.Pool,
		limiter:    newRateLimiter(rps, burst),
		trustProxy: cfg.TrustProxy,
		dev:        cfg.Dev,
		cors:       cfg.CORSOrigins,
	}
}

// routes builds the API mux. Probes are mounted separately in Handler
// so they bypass rate limiting and request logging.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/topics", s.handleTopics)
	mux.HandleFunc("GET /api/v1/topics/{id}", s.handleTopic)
	mux.HandleFunc("GET /api/v1/search", s.handleSearch)

	mux.HandleFunc("POST /api/v1/chat", s.handleChat)
	mux.HandleFunc("POST /api/v1/quiz", s.handleQuiz)
	mux.HandleFunc("POST /api/v1/learning-path", s.handleLearningPath)
	mux.HandleFunc("POST /api/v1/report", s.handleReport)

	mux.HandleFunc("POST /api/v1/features/exam-predictor", s.handleExamPredictor)
	mux.HandleFunc("POST /api/v1/features/diagram", s.handleDiagram)
	mux.HandleFunc("POST /api/v1/features/mistake-analyzer", s.handleMistakeAnalyzer)
	mux.HandleFunc("POST /api/v1/features/revision", s.handleRevision)
	mux.HandleFunc("POST /api/v1/features/roadmap", s.handleRoadmap)

	return mux
}

// Handler assembles the full middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → routes
//
// Health probes sit outside the stack so orchestrators polling them do
// not consume rate budget or spam the request log.
func (s *Server) Handler() http.Handler {
	var api http.Handler = s.routes()

	api = rateLimitMiddleware(s.limiter, s.trustProxy, s.logger)(api)
	if len(s.cors) > 0 {
		api = corsMiddleware(s.cors)(api)
	}
	api = loggingMiddleware(s.logger)(api)
	api = requestIDMiddleware()(api)
	api = recoveryMiddleware(s.logger)(api)

	top := http.NewServeMux()
	top.HandleFunc("GET /health", s.handleHealth)
	top.HandleFunc("GET /ready", s.handleReady)
	top.Handle("/", api)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setSecurityHeaders(w, s.dev)
		top.ServeHTTP(w, r)
	})
}
