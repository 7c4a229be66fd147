package generation

import (
	"context"
	"errors"

	"go-patent-vision/pkg/models"
)

var (
	// ErrMissingAPIKey is returned when GOOGLE_API_KEY did not resolve.
	ErrMissingAPIKey = errors.New("gemini: api key is empty")
	// ErrNoImage is returned for requests without an image.
	ErrNoImage = errors.New("gemini: request has no image")
	// ErrEmptyResponse is returned when the provider produced no text candidate.
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// Generator describes an image with a hosted multimodal model.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error)
	Model() string
}
