package yt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPoTokenRequired = errors.New("youtube: this transcript can only be fetched with a PO token")
	ErrRequestBlocked  = errors.New("youtube: request blocked, too many requests from this IP")
)

// TranscriptsDisabledError means the video carries no caption tracks at all
type TranscriptsDisabledError struct {
	VideoID string
}

// Implement error interface
func (e *TranscriptsDisabledError) Error() string {
	return fmt.Sprintf("subtitles are disabled for video %s", e.VideoID)
}

// NoTranscriptFoundError means none of the requested languages is available
type NoTranscriptFoundError struct {
	VideoID   string
	Requested []string
	Available []string
}

// Implement error interface
func (e *NoTranscriptFoundError) Error() string {
	return fmt.Sprintf(
		"no transcript found for video %s in languages [%s], available: [%s]",
		e.VideoID,
		strings.Join(e.Requested, ", "),
		strings.Join(e.Available, ", "),
	)
}

// VideoUnavailableError carries the playability status of a video
// that YouTube refused to play
type VideoUnavailableError struct {
	VideoID string
	Status  string
	Reason  string
}

// Implement error interface
func (e *VideoUnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("video %s is unavailable, status=%s", e.VideoID, e.Status)
	}

	return fmt.Sprintf(
		"video %s is unavailable, status=%s, reason=%s",
		e.VideoID, e.Status, e.Reason,
	)
}

// IsUnavailable reports whether err means the video has no transcript
// in the requested languages, either because captions are disabled
// or because the language is missing.
func IsUnavailable(err error) bool {
	var disabled *TranscriptsDisabledError
	var notFound *NoTranscriptFoundError
	return errors.As(err, &disabled) || errors.As(err, &notFound)
}
