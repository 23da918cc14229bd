package yt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const helloXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.2">hello</text>` +
	`<text start="1.7" dur="2">world</text>` +
	`</transcript>`

const holaXML = `<transcript><text start="0" dur="1">hola</text></transcript>`

const autoXML = `<transcript><text start="0" dur="1">auto</text></transcript>`

// Player responses keyed by video ID, %[1]s is replaced with the server URL
var players = map[string]string{
	"manual": `{
		"playabilityStatus": {"status": "OK"},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "%[1]s/api/timedtext?v=manual&lang=es", "languageCode": "es", "name": {"runs": [{"text": "Spanish"}]}},
			{"baseUrl": "%[1]s/api/timedtext?v=manual&lang=en&kind=asr&fmt=srv3", "languageCode": "en", "kind": "asr", "name": {"runs": [{"text": "English (auto-generated)"}]}},
			{"baseUrl": "%[1]s/api/timedtext?v=manual&lang=en", "languageCode": "en", "name": {"simpleText": "English"}}
		]}}
	}`,
	"generated": `{
		"playabilityStatus": {"status": "OK"},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "%[1]s/api/timedtext?v=generated&lang=en&kind=asr", "languageCode": "en", "kind": "asr"}
		]}}
	}`,
	"spanish": `{
		"playabilityStatus": {"status": "OK"},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "%[1]s/api/timedtext?v=spanish&lang=es", "languageCode": "es"}
		]}}
	}`,
	"disabled":     `{"playabilityStatus": {"status": "OK"}}`,
	"notracks":     `{"playabilityStatus": {"status": "OK"}, "captions": {"playerCaptionsTracklistRenderer": {"captionTracks": []}}}`,
	"private":      `{"playabilityStatus": {"status": "LOGIN_REQUIRED", "reason": "This video is private"}}`,
	"malformed":    `{"captions": [`,
	"potoken":      `{"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [{"baseUrl": "%[1]s/api/timedtext?v=potoken&lang=en&exp=xpe", "languageCode": "en"}]}}}`,
	"brokentrack":  `{"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [{"baseUrl": "%[1]s/api/timedtext?v=brokentrack&lang=en", "languageCode": "en"}]}}}`,
	"throttled":    "",
	"playerfailed": "",
}

// newTestClient serves canned YouTube responses
func newTestClient(t *testing.T) *Client {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("POST /youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.Context.Client.ClientName != "ANDROID" {
			http.Error(w, "wrong client", http.StatusBadRequest)
			return
		}

		switch req.VideoID {
		case "throttled":
			w.WriteHeader(http.StatusTooManyRequests)
			return
		case "playerfailed":
			http.Error(w, "boom", http.StatusServiceUnavailable)
			return
		}

		body, ok := players[req.VideoID]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, withHost(body, srv.URL))
	})

	mux.HandleFunc("GET /watch", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("v")
		switch id {
		case "captcha":
			fmt.Fprint(w, `<html><form><div class="g-recaptcha"></div></form></html>`)
			return
		case "nomarker":
			fmt.Fprint(w, `<html><body>nothing here</body></html>`)
			return
		}

		body, ok := players[id]
		if !ok {
			http.NotFound(w, r)
			return
		}

		fmt.Fprint(w, `<html><script>var ytInitialPlayerResponse = `+withHost(body, srv.URL)+`;var meta = {"a": 1};</script></html>`)
	})

	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("fmt") != "" {
			http.Error(w, "unexpected format", http.StatusBadRequest)
			return
		}

		switch {
		case q.Get("v") == "brokentrack":
			fmt.Fprint(w, "")
		case q.Get("lang") == "es":
			fmt.Fprint(w, holaXML)
		case q.Get("kind") == "asr":
			fmt.Fprint(w, autoXML)
		default:
			fmt.Fprint(w, helloXML)
		}
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
}

// withHost fills the server URL into a canned response
func withHost(body, host string) string {
	return strings.ReplaceAll(body, "%[1]s", host)
}

func texts(fragments []Fragment) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, f.Text)
	}
	return out
}

func TestFetchTranscript(t *testing.T) {

	client := newTestClient(t)

	tests := []struct {
		name      string
		videoID   string
		languages []string
		expected  []string
		check     func(error) bool
	}{
		{"manual english", "manual", []string{"en"}, []string{"hello", "world"}, nil},
		{"language preference order", "manual", []string{"es", "en"}, []string{"hola"}, nil},
		{"generated only", "generated", []string{"en"}, []string{"auto"}, nil},
		{"language missing", "spanish", []string{"en"}, nil, IsUnavailable},
		{"captions disabled", "disabled", []string{"en"}, nil, IsUnavailable},
		{"no tracks", "notracks", []string{"en"}, nil, IsUnavailable},
		{"video unavailable", "private", []string{"en"}, nil, func(err error) bool {
			var target *VideoUnavailableError
			return errors.As(err, &target) && !IsUnavailable(err)
		}},
		{"malformed player response", "malformed", []string{"en"}, nil, func(err error) bool {
			return err != nil && !IsUnavailable(err)
		}},
		{"po token", "potoken", []string{"en"}, nil, func(err error) bool {
			return errors.Is(err, ErrPoTokenRequired)
		}},
		{"empty timedtext", "brokentrack", []string{"en"}, nil, func(err error) bool {
			return err != nil && !IsUnavailable(err)
		}},
		{"throttled", "throttled", []string{"en"}, nil, func(err error) bool {
			return errors.Is(err, ErrRequestBlocked)
		}},
		{"player failed", "playerfailed", []string{"en"}, nil, func(err error) bool {
			return err != nil && !IsUnavailable(err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments, err := client.FetchTranscript(context.Background(), tt.videoID, tt.languages)

			if tt.check != nil {
				if !tt.check(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.expected, texts(fragments)); diff != "" {
				t.Errorf("fragments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchTranscriptTimings(t *testing.T) {

	client := newTestClient(t)

	fragments, err := client.FetchTranscript(context.Background(), "manual", []string{"en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Fragment{
		{Text: "hello", Start: 0.5, Duration: 1.2},
		{Text: "world", Start: 1.7, Duration: 2},
	}

	if diff := cmp.Diff(expected, fragments); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestListTranscripts(t *testing.T) {

	client := newTestClient(t)

	list, err := client.ListTranscripts(context.Background(), "manual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type track struct {
		Code, Name string
		Generated  bool
	}

	var got []track
	for _, tr := range list.Transcripts() {
		got = append(got, track{tr.LanguageCode, tr.Language, tr.IsGenerated})
	}

	expected := []track{
		{"es", "Spanish", false},
		{"en", "English", false},
		{"en", "English (auto-generated)", true},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}

	tr, err := list.FindTranscript([]string{"en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.IsGenerated {
		t.Errorf("got generated track, want manual one")
	}

	fragments, err := tr.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"hello", "world"}, texts(fragments)); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestListTranscriptsErrors(t *testing.T) {

	client := newTestClient(t)

	tests := []struct {
		name    string
		videoID string
		check   func(error) bool
	}{
		{"captions disabled", "disabled", IsUnavailable},
		{"captcha", "captcha", func(err error) bool { return errors.Is(err, ErrRequestBlocked) }},
		{"no player response", "nomarker", func(err error) bool { return err != nil && !IsUnavailable(err) }},
		{"unknown video", "missing", func(err error) bool { return err != nil && !IsUnavailable(err) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.ListTranscripts(context.Background(), tt.videoID)
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFindTranscriptNotFound(t *testing.T) {

	client := newTestClient(t)

	list, err := client.ListTranscripts(context.Background(), "spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = list.FindTranscript([]string{"en", "de"})

	var target *NoTranscriptFoundError
	if !errors.As(err, &target) {
		t.Fatalf("got error %v, want NoTranscriptFoundError", err)
	}

	if diff := cmp.Diff([]string{"es"}, target.Available); diff != "" {
		t.Errorf("available mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"en", "de"}, target.Requested); diff != "" {
		t.Errorf("requested mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCanceledContext(t *testing.T) {

	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchTranscript(ctx, "manual", []string{"en"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}

	if IsUnavailable(err) {
		t.Errorf("canceled request reported as unavailable")
	}
}
