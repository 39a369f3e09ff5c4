package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cinefav/cinefav/internal/metrics"
	"github.com/cinefav/cinefav/internal/middleware"
	"github.com/cinefav/cinefav/internal/service"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder

	Accounts  *service.AccountService
	Movies    *service.MovieService
	Favorites *service.FavoriteService

	Tokens      middleware.AccessTokenParser
	AuthLimiter middleware.AuthLimiter
	Health      *HealthHandler
	// Metrics serves GET /metrics when set.
	Metrics http.Handler

	APIPrefix          string
	IsDevelopment      bool
	CORSAllowedOrigins []string
	MaxRequestBodySize int64

	RateLimitRequests int
	RateLimitWindow   time.Duration

	AuthRateLimitEnabled bool
	AuthRateLimitRPM     int
	AuthRateLimitBurst   int
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger, cfg.Recorder))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}
	r.Use(middleware.Throttle(cfg.RateLimitRequests, cfg.RateLimitWindow))
	r.Use(chimiddleware.StripSlashes)

	// Probes and metrics stay at the root regardless of API_PREFIX.
	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	api := apiRoutes(cfg)
	if cfg.APIPrefix != "" {
		r.Mount(cfg.APIPrefix, api)
	}
	r.Mount("/", api)

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}

func apiRoutes(cfg RouterConfig) chi.Router {
	accounts := NewAccountHandler(cfg.Accounts, cfg.Logger)
	movies := NewMovieHandler(cfg.Movies, cfg.Logger)
	favorites := NewFavoriteHandler(cfg.Favorites, cfg.Logger)

	requireAuth := middleware.RequireAuth(middleware.AuthConfig{
		Logger: cfg.Logger,
		Tokens: cfg.Tokens,
	})
	authLimit := middleware.RateLimitAuth(middleware.RateLimitConfig{
		Logger:  cfg.Logger,
		Limiter: cfg.AuthLimiter,
		Enabled: cfg.AuthRateLimitEnabled,
		RPM:     cfg.AuthRateLimitRPM,
		Burst:   cfg.AuthRateLimitBurst,
	})

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/users", func(r chi.Router) {
		r.With(authLimit).Post("/signup", accounts.Signup)
		r.With(authLimit).Post("/login", accounts.Login)
		r.With(authLimit).Post("/token/refresh", accounts.Refresh)
		r.With(requireAuth).Get("/me", accounts.Me)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/trending", movies.Trending)
		r.With(requireAuth).Get("/recommend/{movieId}", movies.Recommend)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", favorites.List)
		r.Post("/", favorites.Create)
		r.Delete("/{id}", favorites.Delete)
	})

	return r
}
