package yt

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Strips every tag, safe for concurrent use
var markup = bluemonday.StrictPolicy()

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// Parse timedtext XML into fragments, keeping document order.
// Lines without any text are skipped, whitespace-only lines are kept.
func parseTimedText(data []byte) ([]Fragment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("youtube: parse timedtext: %w", err)
	}

	fragments := make([]Fragment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if len(line.Text) == 0 {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     cleanText(line.Text),
			Start:    line.Start,
			Duration: line.Duration,
		})
	}

	return fragments, nil
}

// Caption text arrives HTML escaped once more on top of the XML escaping,
// and may carry formatting tags such as <i> or <font>.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	// The sanitizer escapes the text it keeps
	return html.UnescapeString(markup.Sanitize(s))
}
