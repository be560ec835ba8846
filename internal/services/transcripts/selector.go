package transcripts

import (
	"math"
	"sort"
	"strings"

	"github.com/chapterlens/outline-api/pkg/timestamp"
)

// Segment selection limits. Closest-line fallback widths match the prompt
// size the generation backend tolerates.
const (
	DefaultBeforeSeconds = 30
	DefaultAfterSeconds  = 60
	DefaultMaxLines      = 30

	closestLinesBefore = 5
	closestLinesAfter  = 10
	capLinesBefore     = 10
)

// ExtractSegment returns the portion of a transcript document surrounding
// the target time, rendered one "[HH:MM:SS] text" line per row. Documents
// with no parseable timestamps are returned verbatim so downstream prompts
// still receive whatever text exists.
func ExtractSegment(document string, target float64, beforeSeconds, afterSeconds, maxLines int) string {
	lines := timestamp.ParseDocument(document)
	if len(lines) == 0 {
		return document
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Seconds < lines[j].Seconds })
	last := lines[len(lines)-1].Seconds
	target = normalizeTarget(target, last)

	startTime := math.Max(0, target-float64(beforeSeconds))
	endTime := target + float64(afterSeconds)

	var relevant []timestamp.Line
	for _, l := range lines {
		if float64(l.Seconds) >= startTime && float64(l.Seconds) <= endTime {
			relevant = append(relevant, l)
		}
	}

	if len(relevant) == 0 {
		relevant = closestLines(lines, target)
	}

	if len(relevant) > maxLines {
		relevant = capLines(relevant, target, maxLines)
	}

	rendered := make([]string, len(relevant))
	for i, l := range relevant {
		rendered[i] = timestamp.FormatLine(l)
	}
	return strings.Join(rendered, "\n")
}

// normalizeTarget rescales a target time that falls far outside the
// transcript range. Snapshot times recorded against a different clock come
// in orders of magnitude too large, so targets past 1.5x the last line are
// folded back into range, with an 80% fallback when folding lands at zero.
func normalizeTarget(target float64, lastSeconds int) float64 {
	last := float64(lastSeconds)
	if last <= 0 || target <= last*1.5 {
		return target
	}

	normalized := math.Mod(target/100, last)
	if normalized > 0 {
		return normalized
	}
	return last * 0.8
}

// closestLines collects a neighborhood around the line nearest the target
// when the time window itself is empty.
func closestLines(lines []timestamp.Line, target float64) []timestamp.Line {
	closest := 0
	minDistance := math.Abs(float64(lines[0].Seconds) - target)
	for i := 1; i < len(lines); i++ {
		distance := math.Abs(float64(lines[i].Seconds) - target)
		if distance < minDistance {
			minDistance = distance
			closest = i
		}
	}

	start := closest - closestLinesBefore
	if start < 0 {
		start = 0
	}
	end := closest + closestLinesAfter
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	selected := make([]timestamp.Line, end-start+1)
	copy(selected, lines[start:end+1])
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Seconds < selected[j].Seconds })
	return selected
}

// capLines trims an oversized selection to maxLines, keeping the first line
// at or past the target roughly a third of the way in.
func capLines(lines []timestamp.Line, target float64, maxLines int) []timestamp.Line {
	middle := -1
	for i, l := range lines {
		if float64(l.Seconds) >= target {
			middle = i
			break
		}
	}

	start := middle - capLinesBefore
	if start < 0 {
		start = 0
	}
	end := start + maxLines
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}
