package service

import (
	"context"
	"errors"
	"time"

	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/internal/generation"
	"go-patent-vision/internal/observer"
	"go-patent-vision/pkg/models"
	"go-patent-vision/pkg/validation"
)

// MsgUploadImage is shown when a description is requested without an image.
const MsgUploadImage = "please upload an image"

// ImageDescriptionService forwards an image and prompt to the generation
// provider.
type ImageDescriptionService interface {
	Describe(ctx context.Context, req models.GenerationRequest) (*models.DescriptionResult, error)
}

type imageDescriptionService struct {
	generator generation.Generator
	validator *validation.ImageValidator
	events    observer.Subject
	timeout   time.Duration
}

func NewImageDescriptionService(
	generator generation.Generator,
	validator *validation.ImageValidator,
	events observer.Subject,
	timeout time.Duration,
) ImageDescriptionService {
	if events == nil {
		events = observer.Nop{}
	}
	return &imageDescriptionService{
		generator: generator,
		validator: validator,
		events:    events,
		timeout:   timeout,
	}
}

// Describe validates the upload before anything leaves the process; a
// request without an image never reaches the provider.
func (s *imageDescriptionService) Describe(ctx context.Context, req models.GenerationRequest) (*models.DescriptionResult, error) {
	if req.Image == nil || len(req.Image.Data) == 0 {
		return nil, apperrors.NewValidationError(MsgUploadImage, nil)
	}
	if err := s.validator.ValidateUpload(req.Image); err != nil {
		return nil, err
	}

	start := time.Now()
	subject := req.Image.Filename
	s.events.NotifyObservers(ctx, observer.PipelineEvent{EventType: observer.GenerationStarted, Subject: subject})

	genCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.generator.Generate(genCtx, req)
	if err != nil {
		s.events.NotifyObservers(ctx, observer.PipelineEvent{
			EventType:      observer.GenerationFailed,
			Subject:        subject,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
			Metadata:       map[string]interface{}{"model": s.generator.Model()},
		})
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("image description timed out", err)
		}
		return nil, apperrors.NewGenerationError("image description failed", err)
	}

	s.events.NotifyObservers(ctx, observer.PipelineEvent{
		EventType:      observer.GenerationComplete,
		Subject:        subject,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"model":       resp.Model,
			"has_prompt":  req.Prompt != "",
			"image_bytes": len(req.Image.Data),
		},
	})

	return &models.DescriptionResult{
		Prompt:         req.Prompt,
		Text:           resp.Text,
		Model:          resp.Model,
		ImageMIMEType:  req.Image.MIMEType,
		PreviewDataURL: validation.DataURL(req.Image.MIMEType, req.Image.Data),
		Messages:       []models.StatusMessage{models.Success("The response is ready.")},
	}, nil
}
