package transcripts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildDocument renders one line every interval seconds up to total.
func buildDocument(total, interval int) string {
	var lines []string
	for s := 0; s <= total; s += interval {
		lines = append(lines, fmt.Sprintf("[%02d:%02d:%02d] line at %d", s/3600, s%3600/60, s%60, s))
	}
	return strings.Join(lines, "\n")
}

func TestExtractSegment_WindowAroundTarget(t *testing.T) {
	document := buildDocument(600, 10)

	segment := ExtractSegment(document, 300, 30, 60, DefaultMaxLines)

	lines := strings.Split(segment, "\n")
	// Inclusive window from 270s to 360s at 10s spacing.
	assert.Len(t, lines, 10)
	assert.Equal(t, "[00:04:30] line at 270", lines[0])
	assert.Equal(t, "[00:06:00] line at 360", lines[len(lines)-1])
}

func TestExtractSegment_UnparseableDocumentReturnedVerbatim(t *testing.T) {
	document := "no timestamps here\njust plain prose"
	assert.Equal(t, document, ExtractSegment(document, 120, 30, 60, DefaultMaxLines))
}

func TestExtractSegment_EmptyWindowFallsBackToClosestLines(t *testing.T) {
	// Sparse transcript with a large gap around the target.
	document := "[00:00:10] early one\n[00:00:20] early two\n[00:20:00] late one\n[00:21:00] late two"

	segment := ExtractSegment(document, 600, 30, 60, DefaultMaxLines)

	// Nothing falls inside [570, 660], so the neighborhood of the closest
	// line (20:00) is used instead.
	lines := strings.Split(segment, "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "[00:00:10] early one", lines[0])
	assert.Equal(t, "[00:21:00] late two", lines[3])
}

func TestExtractSegment_CapsLineCount(t *testing.T) {
	document := buildDocument(600, 2)

	segment := ExtractSegment(document, 300, 60, 120, 30)

	lines := strings.Split(segment, "\n")
	assert.Len(t, lines, 30)
	// The first line at or past the target sits ten lines in.
	assert.Contains(t, lines[10], "line at 300")
}

func TestExtractSegment_RescalesOutOfRangeTarget(t *testing.T) {
	document := buildDocument(600, 10)

	// 123456/100 mod 600 = 34.56, so the window lands around 34s.
	segment := ExtractSegment(document, 123456, 30, 60, DefaultMaxLines)

	assert.Contains(t, segment, "line at 30")
	assert.NotContains(t, segment, "line at 590")
}

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		last   int
		want   float64
	}{
		{"in range untouched", 100, 600, 100},
		{"slightly past end untouched", 700, 600, 700},
		{"far past end folded", 123456, 600, 34.56},
		{"zero duration untouched", 500, 0, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, normalizeTarget(tt.target, tt.last), 0.001)
		})
	}
}
