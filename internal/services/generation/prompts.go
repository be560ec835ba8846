package generation

import "strings"

// Prompt templates per UI language. Unknown languages fall back to English.
// Placeholders are substituted once, in declaration order, by BuildPrompt.

const outlineTemplateEN = `Generate an outline for YouTube video {videoUrl}.
Based on the following information, extract important points from the video in chronological order.

## Video Information
Title: {videoTitle}
Channel: {channelName}
Duration: {videoDuration} seconds

{transcriptSection}
# Overall Instructions
- **Purpose**: This outline is designed to help viewers quickly understand the main content and flow of the video.
- **Format**: Each outline item should be written in the format ` + "`[HH:MM:SS] Title: Description`" + `.

# Critical Instructions for Timestamps and Segmentation
- **Timestamp Definition**: Each timestamp should indicate the **exact time (HH:MM:SS) when that topic or scene actually begins** in the video.
- **Emphasis on Content Breaks**: Timestamps should be determined based on **clear breaks in the video's narrative or information delivery** (e.g., major topic transitions, beginning of new sections, start of demonstrations, significant scene changes, key person appearances and start of their statements), not merely time progression or mechanical intervals.
- **Strict Prohibition of Excessive Subdivision**:
    - **Avoid Overly Short Segments**: Avoid assigning individual timestamps to overly detailed events that last only seconds to tens of seconds in succession.
    - **Aggregate Similar Events**: Similar minor events that occur consecutively in a short time (e.g., continuous participant introductions, consecutive short cuts in montage scenes) should be **consolidated into one representative timestamp and description**.
- **Appropriate Intervals Between Timestamps**: As a result, each timestamp should have meaningful temporal intervals (usually at least tens of seconds to several minutes) between them. However, this may vary depending on the video's structure.
- **Verifiability**: Each generated timestamp should be such that when a third party checks that time in the video, they can clearly agree that the described event begins at that moment.

# Title and Description
- **Title**: Provide a concise title that accurately represents the content of that segment.
- **Description**: The description for each point should specifically describe the content of that scene within 50 words.

# Number of Points
- Cover the entire video and extract **approximately {numPoints} important points (however, within a range of minimum 5 to maximum 30 depending on the video content)**. If the video is very short or the content is monotonous, fewer points are acceptable.

# Expected Output Format Example (Content-based timestamps)
[00:01:23] New feature demonstration begins: Explaining how to use the new analysis tool.
[00:05:45] User interview: Existing user shares their experience.
[00:08:10] Q&A session: Common questions and their answers.

# Output Format Examples to Avoid (Overly subdivided or content-irrelevant timestamps)
[00:01:00] Participant A introduction
[00:01:05] Participant B introduction
[00:02:00] Next topic

- Set the first and last points at the beginning and end of the video
- Don't miss important points
- Don't include points unrelated to the video content`

const outlineTemplateJA = `YouTube動画 {videoUrl} のアウトラインを生成してください。
以下の情報を元に、動画の重要なポイントを時系列順に抽出してください。

## 動画情報
タイトル: {videoTitle}
チャンネル: {channelName}
長さ: {videoDuration}秒

{transcriptSection}
# 全体的な指示
- **目的**: このアウトラインは、視聴者が動画の主要な内容と流れを素早く把握するためのものです。
- **形式**: 各アウトライン項目は ` + "`[HH:MM:SS] タイトル: 説明`" + ` の形式で記述してください。

# タイムスタンプとセグメント化に関する最重要指示
- **タイムスタンプの定義**: 各タイムスタンプは、動画内でそのトピックやシーンが**実際に開始される正確な時刻 (HH:MM:SS)** を示してください。
- **内容の区切りの重視**: タイムスタンプは、単なる時間経過や機械的な間隔ではなく、**動画の物語上、または情報伝達上の明確な区切り**に基づいて決定してください。
- **過度な細分化の厳禁**: 数秒から数十秒で終わるような細かすぎる事象の連続に対して、それぞれ個別のタイムスタンプを割り当てるのは避け、類似の細かいイベントは1つの代表的なタイムスタンプと説明に集約してください。
- **タイムスタンプ間の適切な間隔**: 各タイムスタンプ間には、内容的に意味のある時間的間隔が空くことを期待します。
- **検証可能性**: 生成された各タイムスタンプは、第三者が動画のその時刻を確認した際に、説明内容の事象がその瞬間に開始されていると明確に同意できるものである必要があります。

# タイトルと説明
- **タイトル**: そのセグメントの内容を的確に表す、簡潔なタイトルを付けてください。
- **説明**: 各ポイントの説明は、そのシーンの内容を100文字以内で具体的に記述してください。

# ポイント数
- 動画全体を網羅し、**およそ{numPoints}個（ただし、動画の内容に応じて最小5個から最大30個の範囲）**の重要なポイントを抽出してください。

# 期待する出力形式の例
[00:01:23] 新機能のデモンストレーション開始: 新しい分析ツールの使い方を説明。
[00:05:45] ユーザーインタビュー: 既存ユーザーが体験談を語る。
[00:08:10] Q&Aセッション: よくある質問とその回答。

- 最初と最後のポイントは動画の冒頭と終盤に設定してください
- 重要なポイントを見逃さないようにしてください
- 動画の内容に関係ないポイントは含めないでください`

const snapshotTemplateEN = `This is a snapshot at {formattedTime} from the YouTube video {videoTitle}.

Task: Turn the snapshot at {formattedTime} into a 30-50 words English caption
that spotlights a key detail.

Guidelines
- Pull at least one concrete element (figure, proper noun, quote) from the
  transcript or on-screen text.
- Do not start with generic scene phrases or timestamps, repeat title words.
- Refresh angle and diction for each caption in the same video.

{transcriptSection}`

const snapshotTemplateJA = `YouTube動画 {videoTitle} の{formattedTime}時点のスナップショットです。
画像及び前後のトランスクリプトを元にこの画像の核心を突く日本語説明文を70文字から100文字程度で生成してください。

ガイドライン
- 前後30〜60秒の発言・画像内テキストから "数値・固有名詞・引用" 等の
  具体的ディテールを最低1つ盛り込む
- 冒頭に「画像／シーン」は置かない、タイトル語句も使わない
- 同一動画内では切り口と言葉選びを変える

{transcriptSection}`

// OutlineTemplate returns the outline prompt template for a UI language
func OutlineTemplate(language string) string {
	if language == "ja" {
		return outlineTemplateJA
	}
	return outlineTemplateEN
}

// SnapshotTemplate returns the snapshot caption template for a UI language
func SnapshotTemplate(language string) string {
	if language == "ja" {
		return snapshotTemplateJA
	}
	return snapshotTemplateEN
}

// TranscriptSection wraps a transcript segment under a localized heading.
// Returns an empty string for an empty segment so templates collapse cleanly.
func TranscriptSection(language, segment string) string {
	if strings.TrimSpace(segment) == "" {
		return ""
	}
	if language == "ja" {
		return "## 前後のトランスクリプト\n\n" + segment
	}
	return "## Surrounding Transcript\n\n" + segment
}

// FullTranscriptSection wraps a whole transcript for the outline prompt
func FullTranscriptSection(language, transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return ""
	}
	if language == "ja" {
		return "\n\n## トランスクリプト\n" + transcript
	}
	return "\n\n## Transcript\n" + transcript
}

// BuildPrompt substitutes the first occurrence of each {placeholder} in the
// template with its value
func BuildPrompt(template string, values map[string]string) string {
	prompt := template
	for key, value := range values {
		prompt = strings.Replace(prompt, "{"+key+"}", value, 1)
	}
	return prompt
}
