package cmd

import (
	"cafeapi/config"
	"cafeapi/database"
	"cafeapi/logger"
	"cafeapi/metrics"
	"cafeapi/route"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func run(parent context.Context, configPath string, debug bool) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init()
	log := logger.Get()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.GinMode = gin.DebugMode
		cfg.LogLevel = "debug"
		cfg.SQLLog = true
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level, falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	gin.SetMode(cfg.GinMode)

	store, err := database.Open(ctx, database.Options{
		DSN:    cfg.DatabaseDSN,
		SQLLog: cfg.SQLLog,
		Logger: log.Named("database"),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer store.Close()

	m := metrics.NewManager(metrics.WithRuntimeCollectors())
	if n, err := store.Count(ctx); err == nil {
		m.SetCafes(n)
	}

	router := route.NewRouter(route.Deps{
		Store:          store,
		Logger:         log,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("gin_mode", cfg.GinMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(ctx, "server stopped")
	return nil
}
