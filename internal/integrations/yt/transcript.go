package yt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fragment is one caption unit of a transcript
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// Transcript is one caption track of a video, not fetched yet
type Transcript struct {
	VideoID      string
	Language     string
	LanguageCode string
	IsGenerated  bool

	client *Client
	url    string
}

// TranscriptList holds the caption tracks available for a video
type TranscriptList struct {
	VideoID string

	manual    []*Transcript
	generated []*Transcript
}

// FetchTranscript fetches the transcript of a video in the first available
// of the given languages, straight from the Innertube player.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, languages []string) ([]Fragment, error) {
	pr, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	list, err := c.newTranscriptList(videoID, pr)
	if err != nil {
		return nil, err
	}

	tr, err := list.FindTranscript(languages)
	if err != nil {
		return nil, err
	}

	return tr.Fetch(ctx)
}

// ListTranscripts lists all the caption tracks of a video
// as advertised on its watch page.
func (c *Client) ListTranscripts(ctx context.Context, videoID string) (*TranscriptList, error) {
	page, err := c.watchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	pr, err := extractPlayerResponse(page)
	if err != nil {
		return nil, err
	}

	return c.newTranscriptList(videoID, pr)
}

// Build the transcript list out of a player response
func (c *Client) newTranscriptList(videoID string, pr *playerResponse) (*TranscriptList, error) {
	if pr.Captions == nil {
		if st := pr.PlayabilityStatus; st != nil && st.Status != "" && st.Status != "OK" {
			return nil, &VideoUnavailableError{
				VideoID: videoID,
				Status:  st.Status,
				Reason:  st.Reason,
			}
		}
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, &TranscriptsDisabledError{VideoID: videoID}
	}

	list := &TranscriptList{VideoID: videoID}
	for _, track := range tracks {
		tr := &Transcript{
			VideoID:      videoID,
			Language:     track.name(),
			LanguageCode: track.LanguageCode,
			IsGenerated:  track.Kind == "asr",
			client:       c,
			url:          strings.ReplaceAll(track.BaseURL, "&fmt=srv3", ""),
		}

		if tr.IsGenerated {
			list.generated = append(list.generated, tr)
		} else {
			list.manual = append(list.manual, tr)
		}
	}

	return list, nil
}

// Transcripts returns all the tracks, manually created ones first
func (l *TranscriptList) Transcripts() []*Transcript {
	all := make([]*Transcript, 0, len(l.manual)+len(l.generated))
	all = append(all, l.manual...)
	return append(all, l.generated...)
}

// FindTranscript returns the track of the first language code that matches.
// Language codes are compared exactly, in the given order of preference.
// For each language a manually created track wins over a generated one.
func (l *TranscriptList) FindTranscript(languages []string) (*Transcript, error) {
	for _, code := range languages {
		for _, group := range [][]*Transcript{l.manual, l.generated} {
			for _, tr := range group {
				if tr.LanguageCode == code {
					return tr, nil
				}
			}
		}
	}

	var available []string
	for _, tr := range l.Transcripts() {
		available = append(available, tr.LanguageCode)
	}

	return nil, &NoTranscriptFoundError{
		VideoID:   l.VideoID,
		Requested: languages,
		Available: available,
	}
}

// Fetch downloads and parses the caption track
func (t *Transcript) Fetch(ctx context.Context) ([]Fragment, error) {
	// Tracks behind an experiment flag need a browser generated token
	if strings.Contains(t.url, "&exp=xpe") {
		return nil, ErrPoTokenRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: timedtext request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := t.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("timedtext", resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return nil, fmt.Errorf("youtube: read timedtext: %w", err)
	}

	return parseTimedText(body)
}
