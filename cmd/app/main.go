package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-service/internal/config"
	"github.com/vlatan/transcript-service/internal/integrations/yt"
	"github.com/vlatan/transcript-service/internal/logging"
	"github.com/vlatan/transcript-service/internal/server"
	"github.com/vlatan/transcript-service/internal/transcripts"
	"go.uber.org/zap"
)

func main() {

	// Local runs may keep their settings in a .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env file; %v", err)
	}

	// Init config
	cfg := config.New()

	// Create the logger
	logger, err := logging.New(logging.Options{Debug: cfg.Debug, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("couldn't create logger; %v", err)
	}

	// Create YouTube client
	client := yt.New(
		yt.WithBaseURL(cfg.YouTubeBaseURL),
		yt.WithTimeout(cfg.ProviderTimeout),
	)

	// Create transcripts service
	service := transcripts.New(transcripts.NewYouTubeProvider(client), logger)

	// Create new server and run it
	if err := server.New(cfg, logger, service).Run(); err != nil {
		logger.Fatal("http server error", zap.Error(err))
	}
}
