package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vlatan/transcript-service/internal/transcripts"
	"go.uber.org/zap"
)

// Request bodies are tiny, anything bigger is not ours
const maxBodyBytes = 1 << 20

type transcriptRequest struct {
	VideoID string `json:"videoId"`
}

type transcriptResponse struct {
	Transcript string `json:"transcript"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Fetch the transcript of the video named in the request body
func (s *Server) getTranscriptHandler(w http.ResponseWriter, r *http.Request) {

	// A body we can't read a video ID from is the same as a missing video ID.
	// Unmarshal rejects anything trailing the JSON value.
	var req transcriptRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		s.logger.Debug("invalid transcript request body", zap.Error(err))
		s.writeError(w, r, http.StatusBadRequest, transcripts.ErrMissingVideoID.Error())
		return
	}

	text, err := s.transcripts.Fetch(r.Context(), req.VideoID)
	switch {
	case err == nil:
		s.writeJSON(w, r, http.StatusOK, transcriptResponse{Transcript: text})
	case errors.Is(err, transcripts.ErrMissingVideoID):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, transcripts.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	default:
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}

// Liveness probe
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("failed to write response",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}
