package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/skipjar/skipjar/internal/app"
	"github.com/skipjar/skipjar/internal/handler"
	"github.com/skipjar/skipjar/internal/metrics"
	"github.com/skipjar/skipjar/internal/middleware"
)

// SetupRoutes builds the HTTP surface. Background work started here stops
// when ctx is done.
func SetupRoutes(ctx context.Context, app *app.App) http.Handler {
	// Handlers
	skipLog := handler.NewSkipLogHandler(app.SkipLogService, app.AuthService.Enabled())
	leaderboard := handler.NewLeaderboardHandler(app.LeaderboardService)
	health := handler.NewHealthHandler(app.Store)

	skipLogLimiter := middleware.NewRateLimiter(app.Cfg.SkipLogRateLimit, app.Cfg.SkipLogRateWindow)
	if skipLogLimiter.Enabled() {
		go skipLogLimiter.Run(ctx.Done(), 5*time.Minute)
	}
	rateLimited := middleware.RateLimit(skipLogLimiter)

	mux := http.NewServeMux()

	// Ledger
	mux.Handle("POST /skip-log", rateLimited(http.HandlerFunc(skipLog.LogSkip)))
	mux.HandleFunc("GET /leaderboard", leaderboard.Leaderboard)

	// Operations
	mux.HandleFunc("GET /healthz", health.Health)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Outermost first
	return chi.Chain(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogging,
		chimw.Recoverer,
		middleware.BearerIdentity(app.AuthService),
	).Handler(mux)
}
