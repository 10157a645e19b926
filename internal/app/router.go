package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/mms-suite/mms/internal/materials"
	"github.com/mms-suite/mms/internal/observability"
	"github.com/mms-suite/mms/internal/platform/httpx"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger    *slog.Logger
	Config    *Config
	Materials *materials.Handler
	Metrics   *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	if params.Metrics != nil {
		r.Use(func(next http.Handler) http.Handler {
			return params.Metrics.Middleware(next)
		})
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Registered before the /api subtree so mounted routers inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/health", healthHandler(params.Config))

	r.Route("/api", func(api chi.Router) {
		api.Use(rateLimiter(params.Config))
		params.Materials.Routes(api)
	})

	return r
}

// rateLimiter guards the API subtree with a per-IP request budget.
func rateLimiter(cfg *Config) func(http.Handler) http.Handler {
	limit := 100
	window := 15 * time.Minute
	if cfg != nil {
		if cfg.RateLimit > 0 {
			limit = cfg.RateLimit
		}
		if cfg.RateWindow > 0 {
			window = cfg.RateWindow
		}
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Fail(w, http.StatusTooManyRequests, "too many requests, please retry later", nil)
		}),
	)
}

func healthHandler(cfg *Config) http.HandlerFunc {
	env := "development"
	if cfg != nil {
		env = cfg.AppEnv
	}
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"message":     "material master service is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}
