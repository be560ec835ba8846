package timestamp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxSeconds is the largest timestamp accepted by the parsers. The source
// platform caps video length at roughly 12 hours, so anything above this is
// treated as a parse error rather than a valid position.
const MaxSeconds = 43200

// Line is a single timestamped transcript line.
type Line struct {
	Seconds int
	Text    string
}

// Matcher attempts to extract a timestamped line from raw text. Matchers are
// tried in a fixed priority order; the first match wins.
type Matcher func(line string) (Line, bool)

var (
	// [HH:MM:SS] Text, [MM:SS] Text or [SS] Text
	bracketedPattern = regexp.MustCompile(`\[(\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?\]\s*(.+)`)
	// [123s] Text
	secondsOnlyPattern = regexp.MustCompile(`\[(\d+)s\]\s*(.+)`)
	// (HH:MM:SS) Text or (MM:SS) Text
	parenthesizedPattern = regexp.MustCompile(`\((\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?\)\s*(.+)`)
	// 123: Text or 1:23: Text or 1:23:45: Text
	barePrefixPattern = regexp.MustCompile(`(\d+)(?::(\d+))?(?::(\d+))?:\s*(.+)`)

	// bare clock values such as "0:05" or "1:02:03", used for scraped
	// timestamp fragments that carry no surrounding text
	clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?$`)
)

// Matchers is the ordered cascade of line formats understood by the
// transcript parsers.
var Matchers = []Matcher{
	matchWith(bracketedPattern),
	matchSecondsOnly,
	matchWith(parenthesizedPattern),
	matchWith(barePrefixPattern),
}

func matchWith(pattern *regexp.Regexp) Matcher {
	return func(line string) (Line, bool) {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			return Line{}, false
		}
		seconds := combineClockParts(m[1], m[2], m[3])
		if seconds < 0 || seconds > MaxSeconds {
			return Line{}, false
		}
		return Line{Seconds: seconds, Text: strings.TrimSpace(m[4])}, true
	}
}

func matchSecondsOnly(line string) (Line, bool) {
	m := secondsOnlyPattern.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil || seconds > MaxSeconds {
		return Line{}, false
	}
	return Line{Seconds: seconds, Text: strings.TrimSpace(m[2])}, true
}

// combineClockParts converts up to three clock fragments into seconds. A
// single fragment is seconds, two are MM:SS, three are HH:MM:SS.
func combineClockParts(first, second, third string) int {
	a, err := strconv.Atoi(first)
	if err != nil {
		return -1
	}
	if second == "" {
		return a
	}
	b, err := strconv.Atoi(second)
	if err != nil {
		return -1
	}
	if third == "" {
		return a*60 + b
	}
	c, err := strconv.Atoi(third)
	if err != nil {
		return -1
	}
	return a*3600 + b*60 + c
}

// ParseLine runs the matcher cascade against a single line. Lines that match
// no known format report ok=false and are expected to be dropped.
func ParseLine(line string) (Line, bool) {
	for _, match := range Matchers {
		if parsed, ok := match(line); ok {
			return parsed, true
		}
	}
	return Line{}, false
}

// ParseClock parses a bare clock fragment ("0:05", "12:34", "1:02:03") into
// seconds. Used for scraped timestamp elements.
func ParseClock(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	seconds := combineClockParts(m[1], m[2], m[3])
	if seconds < 0 || seconds > MaxSeconds {
		return 0, false
	}
	return seconds, true
}

// Format renders seconds as zero-padded HH:MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatLine renders a line in the canonical "[HH:MM:SS] text" form.
func FormatLine(l Line) string {
	return fmt.Sprintf("[%s] %s", Format(l.Seconds), l.Text)
}

// ParseDocument parses a newline-delimited transcript document into lines,
// dropping anything the cascade cannot understand. Order is preserved as
// found; callers that need ascending order sort the result themselves.
func ParseDocument(doc string) []Line {
	var lines []Line
	for _, raw := range strings.Split(doc, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if parsed, ok := ParseLine(raw); ok {
			lines = append(lines, parsed)
		}
	}
	return lines
}

// RenderDocument renders lines back into the canonical newline-delimited
// form. Round-tripping through ParseDocument is lossless for conforming
// lines.
func RenderDocument(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, FormatLine(l))
	}
	return strings.Join(parts, "\n")
}
