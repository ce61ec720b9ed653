// Package app provides application initialization and dependency
// injection.
//
// App is the composition root: it assembles configuration, the
// retrieval layer, the model orchestrator, the tutor service, and the
// HTTP server. Every external dependency is optional — without a
// database the retrieval layer runs in keyword mode, and without an
// API key the tutor serves demo responses — so a bare `biomentor serve`
// always comes up.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biomentor-ai/biomentor/internal/api"
	"github.com/biomentor-ai/biomentor/internal/config"
	"github.com/biomentor-ai/biomentor/internal/rag"
	"github.com/biomentor-ai/biomentor/internal/tutor"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Genkit and DBPool are nil when vector retrieval is not configured.
	Genkit *genkit.Genkit
	DBPool *pgxpool.Pool

	Retrieval *rag.Service
	Tutor     *tutor.Service
	Server    *api.Server

	otelShutdown func()
}

// Close gracefully shuts down all resources. Safe to call after a
// partial Setup failure.
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Info("shutting down application")
	}

	if a.DBPool != nil {
		a.DBPool.Close()
	}
	if a.otelShutdown != nil {
		a.otelShutdown()
	}

	return nil
}
