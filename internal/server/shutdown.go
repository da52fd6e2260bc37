package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds in-flight requests and pending planning calls.
const ShutdownTimeout = 15 * time.Second

// GracefulShutdown stops accepting requests, lets in-flight ones finish and
// then runs drain, which waits for background planning calls and log writes.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, drain func(context.Context) error) error {
	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	if drain != nil {
		if err := drain(shutdownCtx); err != nil {
			logger.Warn("Background work did not finish before shutdown", zap.Error(err))
		}
	}

	logger.Info("Server exiting")
	return nil
}
