package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/llmlog"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-tripplanner/internal/app/domain/trip"
	"github.com/FACorreiaa/go-tripplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
)

type AppHandlers struct {
	Trip        *trip.Handlers
	API         *planner.Handler
	RateLimiter *middleware.RateLimiter

	sessions  *trip.SessionStore
	llmLogger *llmlog.LLMLogger
}

// NewAppHandlers builds every handler and its dependencies. dbPool may be nil.
func NewAppHandlers(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) (*AppHandlers, error) {
	var repo llmlog.Repository
	if dbPool != nil {
		repo = llmlog.NewPostgresRepository(dbPool, log)
	}
	llmLogger := llmlog.NewLLMLogger(log, repo)

	var generator planner.ContentGenerator
	var apiPlanner planner.Planner
	if cfg.GeminiEnabled() {
		client, err := planner.NewGenAIClient(ctx, cfg.Planner.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		generator = client.Models
		apiPlanner = planner.NewGeminiPlanner(generator, cfg.Planner.Gemini.Model, llmLogger, log)
	} else {
		log.Warn("GEMINI_API_KEY not set, /api/plan-trip will answer 503")
	}

	uiPlanner, err := planner.New(cfg, planner.Deps{Generator: generator, Recorder: llmLogger, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}
	log.Info("Planner ready", zap.String("planner", fmt.Sprint(uiPlanner)))

	sessions := trip.NewSessionStore(uiPlanner, cfg.Session.TTL, log)

	return &AppHandlers{
		Trip:        trip.NewHandlers(sessions, log),
		API:         planner.NewHandler(apiPlanner, log),
		RateLimiter: middleware.NewRateLimiter(log, cfg.API.RateLimit, cfg.API.RateBurst),
		sessions:    sessions,
		llmLogger:   llmLogger,
	}, nil
}

// Setup mounts the UI at the root and the JSON API under /api. Both routes
// that reach the model share one per-client limiter.
func Setup(r *gin.Engine, h *AppHandlers) {
	limit := h.RateLimiter.Middleware()
	h.Trip.RegisterRoutes(r, limit)
	h.API.RegisterRoutes(r.Group("/api"), limit)
}

// Drain stops new plans, then waits for planning calls still running and for
// pending interaction records, or until ctx is done.
func (h *AppHandlers) Drain(ctx context.Context) error {
	if err := h.sessions.Drain(ctx); err != nil {
		return err
	}
	done := make(chan struct{})
	go func() {
		// Returns once queued writes finish; the process exits soon after a timeout.
		h.llmLogger.Close()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
