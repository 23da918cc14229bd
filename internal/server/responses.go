package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Encode JSON first and then if succesfull write it to the response writer
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("failed to encode JSON response",
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
		status := http.StatusInternalServerError
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		s.logger.Error("failed to write JSON response",
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
	}
}

// Write JSON error to response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, errorResponse{Error: message})
}
