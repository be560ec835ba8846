package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/chapterlens/outline-api/pkg/config"
	apperrors "github.com/chapterlens/outline-api/pkg/errors"
)

// Temperature differs per backend shape to match each API's defaults for
// summarization work.
const (
	generativeTemperature = 0.2
	chatTemperature       = 0.4
)

// Client talks to a generation backend. Model names beginning with "gemini"
// use the generative-content wire shape with the key in the query string;
// every other model uses the chat-completions shape with a bearer header.
type Client struct {
	httpClient        *http.Client
	apiKey            string
	modelName         string
	generativeBaseURL string
	chatBaseURL       string
	maxRetries        int
	maxOutputTokens   int
}

// NewClient creates a generation client from configuration
func NewClient(cfg config.GenerationConfig) *Client {
	return &Client{
		httpClient:        &http.Client{Timeout: cfg.Timeout},
		apiKey:            cfg.APIKey,
		modelName:         cfg.ModelName,
		generativeBaseURL: strings.TrimRight(cfg.GenerativeBaseURL, "/"),
		chatBaseURL:       strings.TrimRight(cfg.ChatBaseURL, "/"),
		maxRetries:        cfg.MaxRetries,
		maxOutputTokens:   cfg.MaxOutputTokens,
	}
}

func (c *Client) isGenerative() bool {
	return strings.HasPrefix(c.modelName, "gemini")
}

// checkCredentials rejects calls before any request is built. Retrying
// rejected requests would never succeed without a key or model name.
func (c *Client) checkCredentials() error {
	if c.apiKey == "" {
		return apperrors.MissingFieldError("api_key")
	}
	if c.modelName == "" {
		return apperrors.MissingFieldError("model_name")
	}
	return nil
}

// Generative-content wire types.
type generativePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generativeContent struct {
	Role  string           `json:"role,omitempty"`
	Parts []generativePart `json:"parts"`
}

type generativeRequest struct {
	Contents         []generativeContent `json:"contents"`
	GenerationConfig generationSettings  `json:"generationConfig"`
}

type generationSettings struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Chat-completions wire types.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// apiResponse covers both backend shapes. Candidate content arrives in
// several layouts depending on model and version, so every known field is
// declared and tried in order.
type apiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Text string `json:"text"`
		} `json:"content"`
		Text string `json:"text"`
	} `json:"candidates"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// extractText pulls the completion text out of a decoded response,
// preferring the parts array, then content.text, then the bare candidate
// text, then the first chat choice.
func extractText(resp *apiResponse) string {
	if len(resp.Candidates) > 0 {
		candidate := resp.Candidates[0]
		if candidate.Content != nil {
			if len(candidate.Content.Parts) > 0 {
				texts := make([]string, len(candidate.Content.Parts))
				for i, part := range candidate.Content.Parts {
					texts[i] = part.Text
				}
				return strings.Join(texts, "\n")
			}
			if candidate.Content.Text != "" {
				return candidate.Content.Text
			}
		}
		return candidate.Text
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content
	}
	return ""
}

func (c *Client) textEndpointAndBody(prompt string) (string, any) {
	if c.isGenerative() {
		endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.generativeBaseURL, c.modelName, c.apiKey)
		return endpoint, generativeRequest{
			Contents:         []generativeContent{{Role: "user", Parts: []generativePart{{Text: prompt}}}},
			GenerationConfig: generationSettings{Temperature: generativeTemperature, MaxOutputTokens: c.maxOutputTokens},
		}
	}
	return c.chatBaseURL + "/chat/completions", chatRequest{
		Model:       c.modelName,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: chatTemperature,
		MaxTokens:   c.maxOutputTokens,
	}
}

// doRequest performs one API round trip and returns the extracted text.
// A non-2xx status or empty completion is an error the caller may retry.
func (c *Client) doRequest(ctx context.Context, endpoint string, body any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !c.isGenerative() {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := extractText(&decoded)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion from model %s", c.modelName)
	}
	return text, nil
}

// GenerateText sends a text-only prompt with a flat one second pause
// between attempts.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generateTextWithRetries(ctx, prompt, c.maxRetries)
}

func (c *Client) generateTextWithRetries(ctx context.Context, prompt string, maxRetries int) (string, error) {
	if err := c.checkCredentials(); err != nil {
		return "", err
	}
	endpoint, body := c.textEndpointAndBody(prompt)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[DEBUG] Generation attempt %d/%d for model %s", attempt, maxRetries, c.modelName)

		text, err := c.doRequest(ctx, endpoint, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("[DEBUG] Generation attempt %d failed: %v", attempt, err)

		if attempt < maxRetries {
			if err := sleepContext(ctx, time.Second); err != nil {
				return "", err
			}
		}
	}

	return "", apperrors.GenerationFailed(c.modelName, maxRetries, lastErr)
}

// GenerateWithImage sends the prompt plus an inline image to a generative
// model. Chat-shaped backends receive the text prompt alone. The pause
// between attempts grows linearly, and the second-to-last failure also
// tries a single text-only call before the final image attempt.
func (c *Client) GenerateWithImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error) {
	if !c.isGenerative() {
		return c.generateTextWithRetries(ctx, prompt, c.maxRetries)
	}
	if err := c.checkCredentials(); err != nil {
		return "", err
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.generativeBaseURL, c.modelName, c.apiKey)
	body := generativeRequest{
		Contents: []generativeContent{{
			Role: "user",
			Parts: []generativePart{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: mimeType, Data: imageBase64}},
			},
		}},
		GenerationConfig: generationSettings{Temperature: generativeTemperature, MaxOutputTokens: c.maxOutputTokens},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		log.Printf("[DEBUG] Image generation attempt %d/%d for model %s", attempt, c.maxRetries, c.modelName)

		text, err := c.doRequest(ctx, endpoint, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("[DEBUG] Image generation attempt %d failed: %v", attempt, err)

		if attempt >= c.maxRetries {
			break
		}
		if err := sleepContext(ctx, time.Duration(attempt)*time.Second); err != nil {
			return "", err
		}
		if attempt == c.maxRetries-1 {
			log.Printf("[DEBUG] Falling back to text-only prompt after image failures")
			if text, err := c.generateTextWithRetries(ctx, prompt, 1); err == nil {
				return text, nil
			}
		}
	}

	return "", apperrors.GenerationFailed(c.modelName, c.maxRetries, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
