package generation

import "context"

// Generator produces text completions from a configured backend model
type Generator interface {
	// GenerateText sends a text-only prompt and returns the model output
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateWithImage sends a prompt plus an inline image. Backends
	// without image support are handed the text prompt alone.
	GenerateWithImage(ctx context.Context, prompt, imageBase64, mimeType string) (string, error)
}
