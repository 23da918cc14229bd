package server

import (
	"net/http"
)

// RegisterRoutes registers the routes and
// wraps the mux with the middlewares that apply to all requests
func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	// Transcripts
	mux.HandleFunc("POST /api/get-transcript", s.getTranscriptHandler)

	// Simple health check
	mux.HandleFunc("GET /healthcheck", s.healthHandler)

	// Chain middlewares that apply to all requests.
	// The order is important, panics are recovered inside
	// the gzip writer so the error body goes through it.
	return s.ApplyToAll(
		s.CloseBody,
		s.Logging,
		s.AddHeaders,
		s.Compress,
		s.RecoverPanic,
	)(mux)
}
