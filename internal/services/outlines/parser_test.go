package outlines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_JSONArray(t *testing.T) {
	raw := `Here is the outline:
[
  {"timestamp": 10, "title": "Intro", "description": "Opening remarks"},
  {"timestamp": "95", "title": "Demo", "description": "Live walkthrough"}
]`

	items := ParseResponse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, 10, items[0].Timestamp)
	assert.Equal(t, "Intro", items[0].Title)
	assert.Equal(t, 95, items[1].Timestamp)
	assert.Equal(t, "Demo", items[1].Title)
}

func TestParseResponse_FencedJSON(t *testing.T) {
	raw := "```json\n[{\"timestamp\": 30, \"title\": \"Setup\", \"description\": \"Installing tools\"}]\n```"

	items := ParseResponse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 30, items[0].Timestamp)
	assert.Equal(t, "Setup", items[0].Title)
}

func TestParseResponse_LineWiseObjects(t *testing.T) {
	raw := `{"timestamp": 5, "title": "One", "description": "first"}
{"timestamp": 65, "title": "Two", "description": "second"}`

	items := ParseResponse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Timestamp)
	assert.Equal(t, 65, items[1].Timestamp)
}

func TestParseResponse_JSONMissingTitle(t *testing.T) {
	raw := `[{"timestamp": 12, "description": "no title given"}]`

	items := ParseResponse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Unknown Title", items[0].Title)
}

func TestParseResponse_FreeText(t *testing.T) {
	raw := `[00:01:23] New feature demo: Explaining the analysis tool.
[05:45] User interview: A customer shares their experience.
not an outline line`

	items := ParseResponse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, 83, items[0].Timestamp)
	assert.Equal(t, "New feature demo", items[0].Title)
	assert.Equal(t, "Explaining the analysis tool.", items[0].Description)
	assert.Equal(t, 345, items[1].Timestamp)
}

func TestParseResponse_FullwidthSeparator(t *testing.T) {
	raw := "[00:02:00] 新機能の紹介：デモを開始します"

	items := ParseResponse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 120, items[0].Timestamp)
	assert.Equal(t, "新機能の紹介", items[0].Title)
	assert.Equal(t, "デモを開始します", items[0].Description)
}

func TestParseResponse_DashSeparatedFallback(t *testing.T) {
	raw := "12:30 — Closing thoughts and final recap"

	items := ParseResponse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 750, items[0].Timestamp)
	assert.Equal(t, "Closing thoughts and final recap", items[0].Title)
	assert.Empty(t, items[0].Description)
}

func TestParseResponse_DashSeparatedWithColonRemainder(t *testing.T) {
	raw := "1:05 - Setup: installing dependencies"

	items := ParseResponse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 65, items[0].Timestamp)
	assert.Equal(t, "Setup", items[0].Title)
	assert.Equal(t, "installing dependencies", items[0].Description)
}

func TestParseResponse_NothingParseable(t *testing.T) {
	assert.Empty(t, ParseResponse("The video covers various topics in depth."))
}

func TestValidateItems_ClampsAndSorts(t *testing.T) {
	items := []ParsedItem{
		{Timestamp: 700, Title: "past end"},
		{Timestamp: -5, Title: "negative"},
		{Timestamp: 120, Title: "fine"},
	}

	validated := ValidateItems(items, 600.5)
	require.Len(t, validated, 3)
	assert.Equal(t, 0, validated[0].Timestamp)
	assert.Equal(t, "negative", validated[0].Title)
	assert.Equal(t, 120, validated[1].Timestamp)
	assert.Equal(t, 599, validated[2].Timestamp)
	assert.Equal(t, "past end", validated[2].Title)
}

func TestValidateItems_ZeroDuration(t *testing.T) {
	validated := ValidateItems([]ParsedItem{{Timestamp: 10}}, 0)
	require.Len(t, validated, 1)
	assert.Equal(t, 0, validated[0].Timestamp)
}

func TestHasTimestampPattern(t *testing.T) {
	assert.True(t, HasTimestampPattern("starts around 1:23 in the video"))
	assert.False(t, HasTimestampPattern("no clock times anywhere"))
}

func TestSampleItems(t *testing.T) {
	items := SampleItems("en", 1200, "A Cooking Video")
	require.Len(t, items, sampleItemCount)
	assert.Equal(t, "Key Point 1", items[0].Title)
	for _, item := range items {
		assert.GreaterOrEqual(t, item.Timestamp, 0)
	}

	ja := SampleItems("ja", 1200, "料理動画")
	assert.Equal(t, "重要ポイント1", ja[0].Title)

	fallback := SampleItems("fr", 1200, "video")
	assert.Equal(t, "Key Point 1", fallback[0].Title)
}
