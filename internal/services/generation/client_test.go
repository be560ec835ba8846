package generation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapterlens/outline-api/pkg/config"
	apperrors "github.com/chapterlens/outline-api/pkg/errors"
)

func testConfig(modelName, baseURL string) config.GenerationConfig {
	return config.GenerationConfig{
		APIKey:            "test-key",
		ModelName:         modelName,
		GenerativeBaseURL: baseURL,
		ChatBaseURL:       baseURL,
		MaxRetries:        3,
		Timeout:           5 * time.Second,
		MaxOutputTokens:   4096,
	}
}

func generativeReply(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + jsonString(text) + `}]}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClient_GenerativeShape(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(generativeReply("first part")))
	}))
	defer server.Close()

	client := NewClient(testConfig("gemini-2.5-pro", server.URL))

	text, err := client.GenerateText(context.Background(), "describe the video")
	require.NoError(t, err)
	assert.Equal(t, "first part", text)

	assert.Contains(t, gotPath, "/models/gemini-2.5-pro:generateContent")
	assert.Contains(t, gotPath, "key=test-key")
	assert.Empty(t, gotAuth)
	assert.Contains(t, gotBody, `"contents"`)
	assert.Contains(t, gotBody, `"temperature":0.2`)
}

func TestClient_MissingCredentials(t *testing.T) {
	cfg := testConfig("gemini-2.5-pro", "http://unreachable.invalid")

	cfg.APIKey = ""
	_, err := NewClient(cfg).GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingField))

	cfg.APIKey = "test-key"
	cfg.ModelName = ""
	_, err = NewClient(cfg).GenerateWithImage(context.Background(), "prompt", "aW1n", "image/png")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeMissingField))
}

func TestClient_ChatShape(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"chat reply"}}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig("gpt-4o-mini", server.URL))

	text, err := client.GenerateText(context.Background(), "describe the video")
	require.NoError(t, err)
	assert.Equal(t, "chat reply", text)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Contains(t, gotBody, `"model":"gpt-4o-mini"`)
	assert.Contains(t, gotBody, `"temperature":0.4`)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(generativeReply("recovered")))
	}))
	defer server.Close()

	client := NewClient(testConfig("gemini-2.5-pro", server.URL))

	text, err := client.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 3, attempts)
}

func TestClient_ExhaustedRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig("gemini-2.5-pro", server.URL))

	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeGenerationFailed))
}

func TestClient_EmptyCompletionIsRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig("gemini-2.5-pro", server.URL))

	_, err := client.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestClient_ExtractionFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"content text", `{"candidates":[{"content":{"text":"from content"}}]}`, "from content"},
		{"candidate text", `{"candidates":[{"text":"from candidate"}]}`, "from candidate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(testConfig("gemini-2.5-pro", server.URL))
			text, err := client.GenerateText(context.Background(), "prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestClient_ImageFallsBackToTextForChatModels(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"text only"}}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig("gpt-4o-mini", server.URL))

	text, err := client.GenerateWithImage(context.Background(), "prompt", "AAAA", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "text only", text)
	assert.NotContains(t, gotBody, "inline_data")
}

func TestClient_ImageFailureTriesTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if strings.Contains(string(raw), "inline_data") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(generativeReply("text fallback")))
	}))
	defer server.Close()

	client := NewClient(testConfig("gemini-2.5-pro", server.URL))

	text, err := client.GenerateWithImage(context.Background(), "prompt", "AAAA", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "text fallback", text)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("video {videoTitle} at {formattedTime}", map[string]string{
		"videoTitle":    "Demo",
		"formattedTime": "00:01:30",
	})
	assert.Equal(t, "video Demo at 00:01:30", prompt)
}

func TestTranscriptSection(t *testing.T) {
	assert.Empty(t, TranscriptSection("en", "   "))
	assert.Contains(t, TranscriptSection("en", "[00:00:05] hi"), "## Surrounding Transcript")
	assert.Contains(t, TranscriptSection("ja", "[00:00:05] hi"), "トランスクリプト")
}
