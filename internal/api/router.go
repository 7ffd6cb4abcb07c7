package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/silentcoach/internal/api/handlers"
	"github.com/nikhilbhutani/silentcoach/internal/api/middleware"
	"github.com/nikhilbhutani/silentcoach/internal/config"
)

// Deps are the collaborators the HTTP surface drives. Redis may be nil.
type Deps struct {
	Log       *slog.Logger
	Config    *config.Config
	Coach     handlers.Coach
	Hub       handlers.Hub
	Room      handlers.RoomStatus
	Redis     *redis.Client
	Restarter handlers.Restarter
}

type Router struct {
	mux  *chi.Mux
	deps Deps
}

func NewRouter(deps Deps) *Router {
	return &Router{
		mux:  chi.NewRouter(),
		deps: deps,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux
	cfg := rt.deps.Config
	origins := cfg.Server.AllowedOrigins()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(rt.deps.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(origins))

	health := handlers.NewHealthHandler(rt.deps.Room, rt.deps.Redis)
	r.Get("/health", health.Healthz)
	r.Get("/readyz", health.Readyz)

	ws := handlers.NewWSHandler(rt.deps.Log, rt.deps.Hub, origins)
	r.Get("/ws", ws.Serve)

	admin := handlers.NewAdminHandler(rt.deps.Log, rt.deps.Coach, rt.deps.Restarter, cfg.Admin.RestartToken)
	rl := middleware.NewRateLimiter(cfg.Admin.RateLimit, cfg.Admin.RateBurst)
	r.Group(func(r chi.Router) {
		r.Use(rl.Limit)
		r.Post("/test-hint", admin.TestHint)
		r.Post("/regenerate-hint", admin.Regenerate)
		r.Post("/restart", admin.Restart)
	})

	return r
}
