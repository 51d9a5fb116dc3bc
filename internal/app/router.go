package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/genius-progression/internal/config"
	"github.com/heartmarshall/genius-progression/internal/transport/middleware"
	"github.com/heartmarshall/genius-progression/internal/transport/rest"
)

// newRouter serves health probes to anyone. The /v1 API requires a user id
// and is rate limited per user.
func newRouter(
	logger *slog.Logger,
	cfg *config.Config,
	health *rest.HealthHandler,
	progression *rest.ProgressionHandler,
	limiter *middleware.RateLimiter,
) http.Handler {
	api := http.NewServeMux()
	progression.Register(api)

	root := http.NewServeMux()
	root.HandleFunc("GET /live", health.Live)
	root.HandleFunc("GET /ready", health.Ready)
	root.HandleFunc("GET /health", health.Health)
	root.Handle("/v1/", middleware.Chain(
		middleware.RequireUser,
		limiter.Limit(cfg.Server.RateLimitPerMinute),
	)(api))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Identity,
	)(root)
}
