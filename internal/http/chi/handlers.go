package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/hookbin/hook"
)

// DefaultMaxBodyBytes bounds captured payloads when Options leaves it unset
const DefaultMaxBodyBytes = 1 << 20

// Options carries the HTTP concerns that come from configuration
type Options struct {
	AdminToken         string
	MaxBodyBytes       int64
	RateLimitPerMinute int

	// Metrics is mounted on GET /metrics when set
	Metrics http.Handler
}

// Handlers sets up the capture endpoint and the admin API
func Handlers(ctx context.Context, hookService hook.UseCase, opts Options) *chi.Mux {
	logger := httplog.NewLogger("hookbin", httplog.Options{
		JSON: true,
	})
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.With(rateLimitByIP(opts.RateLimitPerMinute)).
		Method(http.MethodPost, "/hooks/{slug}", postCapture(hookService, opts.MaxBodyBytes))

	r.Route("/api", func(r chi.Router) {
		r.Use(requireAdmin(opts.AdminToken))

		r.Method(http.MethodGet, "/hooks", getHooks(hookService))
		r.Method(http.MethodPost, "/hooks", postHooks(hookService))
		r.Method(http.MethodGet, "/hooks/{slug}", getHook(hookService))
		r.Method(http.MethodDelete, "/hooks/{slug}", deleteHook(hookService))
		r.Method(http.MethodPost, "/hooks/{slug}/reset", resetHook(hookService))
		r.Method(http.MethodGet, "/entries", getEntries(hookService))
		r.Method(http.MethodGet, "/stats", getStats(hookService))
	})

	return r
}
