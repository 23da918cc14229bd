package yt

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://www.youtube.com"
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// Response size caps
const (
	maxPlayerBytes    = 3 << 20
	maxWatchPageBytes = 6 << 20
	maxTimedTextBytes = 5 << 20
)

// Client talks to YouTube's caption endpoints.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points the client at a different host, mostly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout sets the overall timeout of a single HTTP request.
// Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// Create new YouTube captions client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
