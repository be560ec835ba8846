package outlines

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

const sampleItemCount = 8

type sampleStrings struct {
	sceneTitles        []string
	sceneDescription   string
	defaultTitle       func(i int) string
	defaultDescription string
}

var sampleData = map[string]sampleStrings{
	"en": {
		sceneTitles:        []string{"Scene 1", "Scene 2", "Scene 3", "Scene 4", "Scene 5", "Scene 6", "Scene 7", "Scene 8"},
		sceneDescription:   "Using sample data because AI generation failed.",
		defaultTitle:       func(i int) string { return fmt.Sprintf("Key Point %d", i+1) },
		defaultDescription: "Important content is presented at this timestamp.",
	},
	"ja": {
		sceneTitles:        []string{"シーン1", "シーン2", "シーン3", "シーン4", "シーン5", "シーン6", "シーン7", "シーン8"},
		sceneDescription:   "AIによる生成が失敗したため、サンプルデータを使用しています。",
		defaultTitle:       func(i int) string { return fmt.Sprintf("重要ポイント%d", i+1) },
		defaultDescription: "動画の重要な内容が展開されています。",
	},
	"zh-CN": {
		sceneTitles:        []string{"场景 1", "场景 2", "场景 3", "场景 4", "场景 5", "场景 6", "场景 7", "场景 8"},
		sceneDescription:   "由于AI生成失败，使用示例数据。",
		defaultTitle:       func(i int) string { return fmt.Sprintf("要点 %d", i+1) },
		defaultDescription: "在此时间戳呈现重要内容。",
	},
	"ko": {
		sceneTitles:        []string{"씬 1", "씬 2", "씬 3", "씬 4", "씬 5", "씬 6", "씬 7", "씬 8"},
		sceneDescription:   "AI 생성이 실패하여 예제 데이터를 사용합니다.",
		defaultTitle:       func(i int) string { return fmt.Sprintf("핵심 포인트 %d", i+1) },
		defaultDescription: "이 타임스탬프에 중요한 내용이 표시됩니다.",
	},
}

// SampleItems builds placeholder outline items spread over the video, used
// only when a generation response carries no recognizable timestamps.
func SampleItems(language string, videoDuration float64, videoTitle string) []ParsedItem {
	data, ok := sampleData[language]
	if !ok {
		data = sampleData["en"]
	}

	videoMinutes := videoDuration / 60
	interval := int(math.Floor(videoMinutes / 8))
	if interval < 2 {
		interval = 2
	}

	sceneStyle := strings.Contains(strings.ToLower(videoTitle), "poker")

	items := make([]ParsedItem, 0, sampleItemCount)
	for i := 0; i < sampleItemCount; i++ {
		minutes := i * interval
		if m := int(math.Floor(videoMinutes)); minutes > m {
			minutes = m
		}
		timestamp := (minutes/60)*3600 + (minutes%60)*60 + rand.Intn(50)

		var title, description string
		if sceneStyle {
			title = data.sceneTitles[i%len(data.sceneTitles)]
			description = data.sceneDescription
		} else {
			title = data.defaultTitle(i)
			description = data.defaultDescription
		}

		items = append(items, ParsedItem{Timestamp: timestamp, Title: title, Description: description})
	}
	return items
}
