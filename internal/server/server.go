package server

import (
	"context"
	"net/http"
	"time"

	"github.com/vlatan/transcript-service/internal/config"
	"go.uber.org/zap"
)

// Fetcher returns the joined transcript of a video
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

type Server struct {
	transcripts Fetcher
	config      *config.Config
	logger      *zap.Logger
	cleanup     func() error

	HttpServer *http.Server
}

// Create new HTTP server
func New(cfg *config.Config, logger *zap.Logger, transcripts Fetcher) *Server {

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		transcripts: transcripts,
		config:      cfg,
		logger:      logger,
		cleanup: func() error {
			return logger.Sync()
		},
	}

	s.HttpServer = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     s.RegisterRoutes(),
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// A fetch may take several provider round trips
		WriteTimeout: 2 * time.Minute,
	}

	return s
}
