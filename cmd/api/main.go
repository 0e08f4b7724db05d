package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	httpadp "creditpath-backend/internal/adapter/http"
	idemp "creditpath-backend/internal/adapter/middleware"
	"creditpath-backend/internal/adapter/repository/gormrepo"
	"creditpath-backend/internal/config"
	"creditpath-backend/internal/domain/risk"
	"creditpath-backend/internal/infrastructure/cache"
	"creditpath-backend/internal/infrastructure/db"
	"creditpath-backend/internal/infrastructure/model"
	"creditpath-backend/internal/observability"
	"creditpath-backend/internal/usecase/loan"
	"creditpath-backend/internal/usecase/scoring"
	"creditpath-backend/pkg/id"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.OpenGorm(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: db.LogLevel(cfg.LogLevel)})
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		logger.Error("failed to migrate", "err", err)
		os.Exit(1)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			// both consumers are optional; run without them
			logger.Warn("redis unavailable, stats cache and idempotent replay disabled", "addr", cfg.RedisAddr, "err", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var clf scoring.Classifier
	m, err := model.Load(cfg.ModelPath, scoring.FeatureNames)
	switch {
	case errors.Is(err, model.ErrArtifactNotFound):
		logger.Warn("model artifact not found, scoring disabled", "path", cfg.ModelPath)
	case err != nil:
		logger.Error("model artifact rejected, scoring disabled", "path", cfg.ModelPath, "err", err)
	default:
		clf = m
		logger.Info("model loaded", "path", cfg.ModelPath, "version", m.Version())
	}

	metrics := observability.NewMetrics()
	scoringUC := scoring.NewUsecase(clf, risk.NewEngine()).WithObserver(metrics).WithLogger(logger)
	loanUC := loan.NewUsecase(gormrepo.NewLoanRepository(gdb), gormrepo.NewBorrowerRepository(gdb)).WithLogger(logger)

	routes := httpadp.Routes{
		Health:  httpadp.NewHandler(scoringUC),
		Risk:    httpadp.NewRiskHandler(scoringUC),
		Loans:   httpadp.NewLoanHandler(loanUC),
		Metrics: metrics.Handler(),
	}
	if rdb != nil {
		loanUC.WithCache(cache.NewStatsCache(rdb, cfg.StatsCacheTTL()))
		routes.Idempotency = idemp.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL())
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogStatus: true, LogURI: true, LogMethod: true, LogLatency: true, LogRequestID: true, LogError: true,
			HandleError: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID}
				if v.Error != nil {
					logger.Error("request", append(attrs, "err", v.Error)...)
					return nil
				}
				logger.Info("request", attrs...)
				return nil
			},
		}),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"*"},
		}),
		metrics.Middleware(),
	)
	if st, err := os.Stat(cfg.StaticDir); err == nil && st.IsDir() {
		e.Static("/app", cfg.StaticDir)
	} else {
		logger.Warn("frontend directory not found, /app disabled", "dir", cfg.StaticDir)
	}
	httpadp.Register(e, routes)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("api server starting", "addr", addr, "env", cfg.AppEnv, "model_loaded", scoringUC.ModelLoaded())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("api server stopped")
}
