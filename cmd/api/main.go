// Package main is the entrypoint for the cinefav API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/cinefav/cinefav/internal/auth"
	"github.com/cinefav/cinefav/internal/cache"
	"github.com/cinefav/cinefav/internal/config"
	"github.com/cinefav/cinefav/internal/handler"
	"github.com/cinefav/cinefav/internal/metrics"
	"github.com/cinefav/cinefav/internal/repository"
	"github.com/cinefav/cinefav/internal/server"
	"github.com/cinefav/cinefav/internal/service"
	"github.com/cinefav/cinefav/internal/tmdb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	var recorder metrics.Recorder = metrics.NewNoop()
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsEnabled {
		prom = metrics.NewPrometheus()
		recorder = prom
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.Options{
		PoolSize:  cfg.RedisPoolSize,
		OpTimeout: cfg.RedisTimeout,
	})
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		return err
	}
	logger.Info("connected to Redis")

	movieClient, err := tmdb.NewClient(tmdb.Config{
		BaseURL:  cfg.TMDBBaseURL,
		APIKey:   cfg.TMDBAPIKey,
		Language: cfg.TMDBLanguage,
		Timeout:  cfg.TMDBTimeout,
	}, recorder)
	if err != nil {
		repo.Close()
		_ = cacheClient.Close()
		return err
	}

	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	if err != nil {
		repo.Close()
		_ = cacheClient.Close()
		return err
	}
	hasher := auth.NewPasswordHasher(auth.DefaultArgon2Params)

	// Initialize services
	accounts := service.NewAccountService(repo, hasher, tokens, recorder)
	movies := service.NewMovieService(movieClient, cacheClient, cfg.TrendingCacheTTL, recorder, logger)
	favorites := service.NewFavoriteService(repo, recorder)

	routerCfg := handler.RouterConfig{
		Logger:               logger,
		Recorder:             recorder,
		Accounts:             accounts,
		Movies:               movies,
		Favorites:            favorites,
		Tokens:               tokens,
		AuthLimiter:          cacheClient,
		Health:               handler.NewHealthHandler(repo, cacheClient),
		APIPrefix:            cfg.APIPrefix,
		IsDevelopment:        cfg.IsDevelopment(),
		CORSAllowedOrigins:   cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize:   cfg.MaxRequestBodySize,
		AuthRateLimitEnabled: cfg.AuthRateLimitEnabled,
		AuthRateLimitRPM:     cfg.AuthRateLimitRPM,
		AuthRateLimitBurst:   cfg.AuthRateLimitBurst,
	}
	if prom != nil {
		routerCfg.Metrics = prom.Handler()
	}
	if cfg.RateLimitEnabled {
		routerCfg.RateLimitRequests = cfg.RateLimitRequests
		routerCfg.RateLimitWindow = cfg.RateLimitWindow
	}

	srv := server.New(handler.NewRouter(routerCfg), server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"api_prefix", cfg.APIPrefix,
		"env", cfg.AppEnv,
		"metrics", cfg.MetricsEnabled,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
