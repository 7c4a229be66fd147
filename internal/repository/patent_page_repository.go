package repository

import (
	"context"
	"fmt"

	"go-patent-vision/internal/storage"
	"go-patent-vision/pkg/validation"
)

// HTTPPatentPageRepository implements PatentPageRepository over HTTP storage
type HTTPPatentPageRepository struct {
	fetcher   storage.PageFetcher
	validator *validation.URLValidator
}

func NewHTTPPatentPageRepository(fetcher storage.PageFetcher, validator *validation.URLValidator) PatentPageRepository {
	if validator == nil {
		validator = validation.NewURLValidator()
	}
	return &HTTPPatentPageRepository{
		fetcher:   fetcher,
		validator: validator,
	}
}

func (r *HTTPPatentPageRepository) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	if err := r.ValidatePageURL(pageURL); err != nil {
		return nil, err
	}
	body, err := r.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageUnavailable, err)
	}
	return body, nil
}

func (r *HTTPPatentPageRepository) ValidatePageURL(pageURL string) error {
	if err := r.validator.ValidatePageURL(pageURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPageURL, err)
	}
	return nil
}
