package outlines

import (
	"encoding/json"
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ParsedItem is one outline entry extracted from a model response
type ParsedItem struct {
	Timestamp   int
	Title       string
	Description string
}

var (
	jsonArrayPattern   = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
	fencedJSONPattern  = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(\\[\\s*\\{.*\\}\\s*\\])\\s*\n?```")
	lineObjectPattern  = regexp.MustCompile(`(?s)\{\s*"timestamp".*\}`)
	primaryLinePattern = regexp.MustCompile(`\[?(\d{1,2}(?::\d{1,2}){1,2})\]?\s*([^:：-]+)[:：-]\s*(.+)`)
	looseLinePattern   = regexp.MustCompile(`(\d{1,2}:\d{1,2}(?::\d{1,2})?)\s*[-–—]\s*(.+)`)
	titleSplitPattern  = regexp.MustCompile(`(.+?)[:：-]\s*(.+)`)
	clockPattern       = regexp.MustCompile(`\d{1,2}:\d{1,2}`)
)

// ParseResponse extracts outline items from raw model output. JSON shapes
// are tried first, then line-oriented text patterns.
func ParseResponse(raw string) []ParsedItem {
	if items := parseJSON(raw); len(items) > 0 {
		return items
	}
	return parseText(raw)
}

// HasTimestampPattern reports whether the raw output contains anything that
// looks like a clock time. Used to tell a parse failure apart from a
// response with no usable content at all.
func HasTimestampPattern(raw string) bool {
	return clockPattern.MatchString(raw)
}

func parseJSON(raw string) []ParsedItem {
	jsonText := ""
	if m := jsonArrayPattern.FindString(raw); m != "" {
		jsonText = m
	} else if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		jsonText = m[1]
	} else {
		// Some models emit one JSON object per line instead of an array.
		var objects []json.RawMessage
		for _, line := range strings.Split(raw, "\n") {
			objText := lineObjectPattern.FindString(line)
			if objText == "" {
				continue
			}
			var probe map[string]any
			if err := json.Unmarshal([]byte(objText), &probe); err != nil {
				continue
			}
			if _, ok := probe["timestamp"]; ok {
				objects = append(objects, json.RawMessage(objText))
			}
		}
		if len(objects) > 0 {
			combined, err := json.Marshal(objects)
			if err == nil {
				jsonText = string(combined)
			}
		}
	}

	if jsonText == "" {
		return nil
	}

	var rawItems []struct {
		Timestamp   any    `json:"timestamp"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(jsonText), &rawItems); err != nil {
		log.Printf("[DEBUG] Outline JSON decode failed: %v", err)
		return nil
	}

	var items []ParsedItem
	for _, item := range rawItems {
		timestamp, ok := coerceTimestamp(item.Timestamp)
		if !ok {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = "Unknown Title"
		}
		items = append(items, ParsedItem{
			Timestamp:   timestamp,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
		})
	}
	return items
}

func coerceTimestamp(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parseText(raw string) []ParsedItem {
	var items []ParsedItem
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := primaryLinePattern.FindStringSubmatch(line); m != nil {
			// A dash-separated line can satisfy the primary pattern with
			// only whitespace in the title group; those lines belong to
			// the loose pass below.
			if title := strings.TrimSpace(m[2]); title != "" {
				items = append(items, ParsedItem{
					Timestamp:   clockToSeconds(m[1]),
					Title:       title,
					Description: strings.TrimSpace(m[3]),
				})
				continue
			}
		}

		// Looser pass for dash-separated lines the primary pattern misses.
		if strings.Contains(line, ":") && len(line) > 10 {
			m := looseLinePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			title := strings.TrimSpace(m[2])
			description := ""
			if split := titleSplitPattern.FindStringSubmatch(title); split != nil {
				title = strings.TrimSpace(split[1])
				description = strings.TrimSpace(split[2])
			}
			items = append(items, ParsedItem{
				Timestamp:   clockToSeconds(m[1]),
				Title:       title,
				Description: description,
			})
		}
	}
	return items
}

// clockToSeconds converts "H:MM:SS" or "MM:SS" to seconds
func clockToSeconds(clock string) int {
	parts := strings.Split(clock, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p)
	}
	if len(nums) == 3 {
		return nums[0]*3600 + nums[1]*60 + nums[2]
	}
	return nums[0]*60 + nums[1]
}

// ValidateItems clamps item timestamps into the video's duration and sorts
// them ascending. Items at or past the end land one second before it.
func ValidateItems(items []ParsedItem, videoDuration float64) []ParsedItem {
	validated := make([]ParsedItem, len(items))
	copy(validated, items)

	for i := range validated {
		if float64(validated[i].Timestamp) >= videoDuration {
			clamped := int(math.Floor(videoDuration)) - 1
			if clamped < 0 {
				clamped = 0
			}
			validated[i].Timestamp = clamped
		}
		if validated[i].Timestamp < 0 {
			validated[i].Timestamp = 0
		}
	}

	sort.SliceStable(validated, func(i, j int) bool {
		return validated[i].Timestamp < validated[j].Timestamp
	})
	return validated
}
