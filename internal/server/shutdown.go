package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Shutdown listens for SIGINT and SIGTERM signals,
// gracefully shuts down the HTTP server,
// performs cleanup and informs the main goroutine when done.
func (s *Server) Shutdown(done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// This is a blocking call.
	// If context is done an interruption signal was received.
	<-ctx.Done()

	s.logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// Stop watching for termination signals.
	// Another Ctrl+C now goes straight to the OS and kills the process.
	stop()

	// In-flight requests may still be waiting on YouTube.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown waits for connections to return to idle,
	// but in this case up to 10 seconds.
	if err := s.HttpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
	}

	// Flush the logger. Syncing stderr fails on some platforms, ignore it.
	_ = s.cleanup()

	// Notify the main goroutine that the shutdown is complete
	done <- struct{}{}
}
