package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/idilsaglam/todolist/internal/api"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/telemetry"
)

var version = "dev"

func main() {
	fs := flag.NewFlagSet("todo-api", flag.ContinueOnError)
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if cfg.ConfigFile != "" {
		log.Info("loaded config", "file", cfg.ConfigFile)
	}

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(context.Background(), cfg.ServiceName, version)
		if err != nil {
			log.Fatal("telemetry setup failed", "err", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Warn("telemetry shutdown", "err", err)
			}
		}()
	}

	store, err := jsonstore.New(cfg.DataFile, log)
	if err != nil {
		log.Fatal("opening store", "err", err)
	}
	state := api.NewState(store.Load(), store)
	log.Info("loaded todos", "path", store.Path(), "items", state.Len())

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(api.RequestID(), api.RequestLogger(log), api.MetricsMiddleware())

	limit := api.NewRateLimit(api.RateLimitOptions{
		Max:           cfg.RateLimit,
		Window:        cfg.RateWindow(),
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}, log)
	api.RegisterRoutes(r, api.NewHandler(state), api.NewHealthHandler(state, store.Path(), version), limit)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("server started", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}
	log.Info("server exited")
}
