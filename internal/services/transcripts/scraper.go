package transcripts

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// selectorPair names the timestamp and text fragments inside one segment node.
// Player markup differs between layouts, so pairs are tried in priority order
// and a fragment found by an earlier pair is never overwritten by a later one.
type selectorPair struct {
	Timestamp string
	Text      string
}

var fragmentPairs = []selectorPair{
	{Timestamp: "div.segment-timestamp", Text: "yt-formatted-string.segment-text"},
	{Timestamp: "div.cue-group-start-offset", Text: "div.cue"},
	{Timestamp: "div.cue-timestamp", Text: "div.cue-text"},
	{Timestamp: "div.timestamp", Text: "div.text"},
	{Timestamp: ".cue-group-start-offset", Text: ".cue"},
	{Timestamp: ".timestamp", Text: ".text"},
}

// segmentSelectors locate the per-line segment nodes. The panel-scoped form
// is preferred so stray matches elsewhere on the page are ignored.
var segmentSelectors = []string{
	"ytd-transcript-segment-list-renderer ytd-transcript-segment-renderer",
	"ytd-transcript-segment-renderer",
	".transcript-segment",
}

// HTMLScraper extracts transcript lines from posted watch page HTML
type HTMLScraper struct{}

// NewScraper creates a new HTML transcript scraper
func NewScraper() *HTMLScraper {
	return &HTMLScraper{}
}

// Scrape parses the page and emits one "[timestamp] text" line per segment
// node that yields both fragments. Returns an empty string, not an error,
// when nothing can be extracted.
func (s *HTMLScraper) Scrape(pageHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse page HTML: %w", err)
	}

	segments := findSegments(doc)
	if segments == nil || segments.Length() == 0 {
		return "", nil
	}

	var b strings.Builder
	segments.Each(func(_ int, segment *goquery.Selection) {
		timestamp, text := extractFragments(segment)
		if timestamp != "" && text != "" {
			fmt.Fprintf(&b, "[%s] %s\n", timestamp, text)
		}
	})

	return strings.TrimSpace(b.String()), nil
}

func findSegments(doc *goquery.Document) *goquery.Selection {
	for _, selector := range segmentSelectors {
		segments := doc.Find(selector)
		if segments.Length() > 0 {
			return segments
		}
	}
	return nil
}

func extractFragments(segment *goquery.Selection) (timestamp, text string) {
	for _, pair := range fragmentPairs {
		if timestamp == "" {
			timestamp = strings.TrimSpace(segment.Find(pair.Timestamp).First().Text())
		}
		if text == "" {
			// The timestamp node can match loose text selectors too, so a
			// candidate equal to the timestamp fragment is skipped.
			candidate := strings.TrimSpace(segment.Find(pair.Text).First().Text())
			if candidate != timestamp {
				text = candidate
			}
		}
		if timestamp != "" && text != "" {
			break
		}
	}
	return timestamp, text
}
