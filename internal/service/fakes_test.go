package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"go-patent-vision/pkg/models"
)

type fakeSearcher struct {
	link  string
	ok    bool
	err   error
	calls int
}

func (f *fakeSearcher) FirstResultURL(ctx context.Context, patentID string) (string, bool, error) {
	f.calls++
	return f.link, f.ok, f.err
}

type fakePages struct {
	body  string
	err   error
	calls int
	urls  []string
}

func (f *fakePages) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	f.calls++
	f.urls = append(f.urls, pageURL)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func (f *fakePages) ValidatePageURL(pageURL string) error { return nil }

type fakeGenerator struct {
	text     string
	err      error
	calls    int
	requests []models.GenerationRequest
	block    bool
}

func (f *fakeGenerator) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.block {
		<-ctx.Done()
		return models.GenerationResponse{}, ctx.Err()
	}
	if f.err != nil {
		return models.GenerationResponse{}, f.err
	}
	return models.GenerationResponse{Text: f.text, Model: f.Model()}, nil
}

func (f *fakeGenerator) Model() string { return "fake-vision" }

func pngUpload(t *testing.T) *models.UploadedImage {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &models.UploadedImage{Filename: "photo.png", Data: buf.Bytes()}
}

func countLevel(messages []models.StatusMessage, level models.MessageLevel) int {
	n := 0
	for _, m := range messages {
		if m.Level == level {
			n++
		}
	}
	return n
}
