package transcripts

import (
	"context"
	"errors"
	"strings"

	"github.com/vlatan/transcript-service/internal/integrations/yt"
	"go.uber.org/zap"
)

// NotFoundMessage is served when a video has no English transcript
const NotFoundMessage = "No transcript found for this video. " +
	"The creator may have disabled or not provided captions."

var (
	ErrMissingVideoID = errors.New("videoId is required")
	ErrNotFound       = errors.New(NotFoundMessage)
)

// Languages requested from the provider, in order of preference
var languages = []string{"en"}

// UpstreamError is any provider failure other than a missing transcript.
// Its message is the message of the underlying error.
type UpstreamError struct {
	VideoID string
	Err     error
}

// Implement error interface
func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Provider is the captioning service.
// Errors meaning there is no transcript in the requested languages
// must satisfy yt.IsUnavailable.
type Provider interface {
	// FetchTranscript fetches a transcript in one of the languages directly
	FetchTranscript(ctx context.Context, videoID string, languages []string) ([]yt.Fragment, error)
	// ListTranscripts enumerates the transcripts available for a video
	ListTranscripts(ctx context.Context, videoID string) (Listing, error)
}

// Listing is the enumeration of a video's transcripts
type Listing interface {
	FindTranscript(languages []string) (Track, error)
}

// Track is a single transcript that can be fetched
type Track interface {
	Fetch(ctx context.Context) ([]yt.Fragment, error)
}

type Service struct {
	provider Provider
	logger   *zap.Logger
}

// Create new transcripts service
func New(provider Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Fetch returns the whole transcript of a video as one string.
// The direct fetch is tried first. When it finds no transcript
// the video's transcripts are listed and searched instead.
func (s *Service) Fetch(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", ErrMissingVideoID
	}

	fragments, err := s.provider.FetchTranscript(ctx, videoID, languages)
	if err == nil {
		return Join(fragments), nil
	}

	if !yt.IsUnavailable(err) {
		return "", s.upstream(videoID, err)
	}

	s.logger.Debug("direct transcript fetch found nothing, listing transcripts",
		zap.String("video_id", videoID),
		zap.Error(err),
	)

	fragments, err = s.fetchListed(ctx, videoID)
	if err == nil {
		return Join(fragments), nil
	}

	if yt.IsUnavailable(err) {
		s.logger.Warn("transcript not found",
			zap.String("video_id", videoID),
			zap.String("reason", NotFoundMessage),
			zap.Error(err),
		)
		return "", ErrNotFound
	}

	return "", s.upstream(videoID, err)
}

// List the transcripts, then find and fetch the one in our language
func (s *Service) fetchListed(ctx context.Context, videoID string) ([]yt.Fragment, error) {
	listing, err := s.provider.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := listing.FindTranscript(languages)
	if err != nil {
		return nil, err
	}

	return track.Fetch(ctx)
}

// Log and wrap an unexpected provider failure
func (s *Service) upstream(videoID string, err error) error {
	s.logger.Error("unexpected error fetching transcript",
		zap.String("video_id", videoID),
		zap.Error(err),
	)
	return &UpstreamError{VideoID: videoID, Err: err}
}

// Join concatenates the fragments' text with single spaces, in order.
// Empty fragments still get their separator.
func Join(fragments []yt.Fragment) string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, " ")
}
