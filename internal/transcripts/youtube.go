package transcripts

import (
	"context"

	"github.com/vlatan/transcript-service/internal/integrations/yt"
)

// youtubeProvider adapts the YouTube client to the Provider interface
type youtubeProvider struct {
	client *yt.Client
}

type youtubeListing struct {
	list *yt.TranscriptList
}

// NewYouTubeProvider wraps a YouTube client as a Provider
func NewYouTubeProvider(client *yt.Client) Provider {
	return &youtubeProvider{client: client}
}

func (p *youtubeProvider) FetchTranscript(ctx context.Context, videoID string, languages []string) ([]yt.Fragment, error) {
	return p.client.FetchTranscript(ctx, videoID, languages)
}

func (p *youtubeProvider) ListTranscripts(ctx context.Context, videoID string) (Listing, error) {
	list, err := p.client.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &youtubeListing{list: list}, nil
}

func (l *youtubeListing) FindTranscript(languages []string) (Track, error) {
	tr, err := l.list.FindTranscript(languages)
	if err != nil {
		return nil, err
	}
	return tr, nil
}
