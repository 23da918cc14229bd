package yt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Innertube ANDROID client types (/player endpoint)

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

// Human readable track name, the two clients use different shapes
func (t captionTrack) name() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}

	var sb strings.Builder
	for _, run := range t.Name.Runs {
		sb.WriteString(run.Text)
	}

	return sb.String()
}

// The marker preceding the player response JSON in the watch page HTML
const initialPlayerResponseMarker = "ytInitialPlayerResponse = "

// player posts to the ANDROID Innertube /player endpoint
func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	payload, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/youtubei/v1/player?prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: player request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("player", resp); err != nil {
		return nil, err
	}

	var pr playerResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPlayerBytes)).Decode(&pr); err != nil {
		return nil, fmt.Errorf("youtube: decode player response: %w", err)
	}

	return &pr, nil
}

// watchPage fetches the raw HTML of the video's watch page
func (c *Client) watchPage(ctx context.Context, videoID string) ([]byte, error) {
	endpoint := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: watch page request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus("watch page", resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("youtube: read watch page: %w", err)
	}

	if bytes.Contains(body, []byte(`class="g-recaptcha"`)) {
		return nil, ErrRequestBlocked
	}

	return body, nil
}

// extractPlayerResponse decodes the ytInitialPlayerResponse object
// embedded in the watch page HTML
func extractPlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(initialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("youtube: ytInitialPlayerResponse not found in watch page")
	}

	// The decoder stops right after the first complete JSON value,
	// whatever script follows it is never read.
	rest := page[idx+len(initialPlayerResponseMarker):]
	var pr playerResponse
	if err := json.NewDecoder(bytes.NewReader(rest)).Decode(&pr); err != nil {
		return nil, fmt.Errorf("youtube: decode ytInitialPlayerResponse: %w", err)
	}

	return &pr, nil
}

// checkStatus turns non 200 responses into errors
func checkStatus(what string, resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRequestBlocked
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf(
		"youtube: %s returned HTTP %d: %s",
		what, resp.StatusCode, strings.TrimSpace(string(snippet)),
	)
}
