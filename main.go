package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-tripplanner/internal/pkg/config"
	"github.com/FACorreiaa/go-tripplanner/internal/pkg/logger"
	"github.com/FACorreiaa/go-tripplanner/internal/routes"
	"github.com/FACorreiaa/go-tripplanner/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.Observability.LogLevel),
		zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	l := logger.Log
	defer func() { _ = l.Sync() }()
	if cfg.Session.Ephemeral {
		l.Warn("SESSION_SECRET not set, using a random key; sessions will not survive a restart")
	}

	otelShutdown, err := server.InitObservability(cfg.Observability, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer srv.Close()

	handlers, err := routes.NewAppHandlers(ctx, cfg, srv.GetDBPool(), l)
	if err != nil {
		return err
	}

	router := server.SetupRouter(cfg, handlers, l)
	if err := server.SetupAssets(router); err != nil {
		l.Error("Failed to setup assets", zap.Error(err))
		return err
	}
	srv.SetRouter(router)
	srv.SetDrain(handlers.Drain)

	if pprofSrv := server.StartPprofServer(cfg.Observability.PprofAddr, l); pprofSrv != nil {
		defer pprofSrv.Close()
	}

	l.Info("Trip planner starting",
		zap.String("port", cfg.ServerPort),
		zap.String("planner_mode", cfg.Planner.Mode))
	if err := srv.Run(ctx); err != nil {
		return err
	}
	l.Info("Graceful shutdown complete")
	return nil
}
