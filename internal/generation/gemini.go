package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"go-patent-vision/pkg/models"
)

// GeminiGenerator calls the Gemini API. The client is created on first use
// and reused until Close.
type GeminiGenerator struct {
	apiKey string
	model  string
	opts   []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiGenerator(apiKey, model string, opts ...option.ClientOption) *GeminiGenerator {
	return &GeminiGenerator{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
		opts:   opts,
	}
}

func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResponse, error) {
	if g.apiKey == "" {
		return models.GenerationResponse{}, ErrMissingAPIKey
	}
	parts, err := BuildParts(req)
	if err != nil {
		return models.GenerationResponse{}, err
	}

	cl, err := g.getClient(ctx)
	if err != nil {
		return models.GenerationResponse{}, err
	}

	resp, err := cl.GenerativeModel(g.model).GenerateContent(ctx, parts...)
	if err != nil {
		return models.GenerationResponse{}, fmt.Errorf("gemini generate: %w", err)
	}
	text, err := ResponseText(resp)
	if err != nil {
		return models.GenerationResponse{}, err
	}
	return models.GenerationResponse{Text: text, Model: g.model}, nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

func (g *GeminiGenerator) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	opts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)
	// The client outlives the request, so it must not inherit its deadline.
	cl, err := genai.NewClient(context.WithoutCancel(ctx), opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	g.client = cl
	return cl, nil
}

// BuildParts orders the request parts: prompt then image, or the image alone
// when the prompt is empty. A non-empty prompt is sent as typed.
func BuildParts(req models.GenerationRequest) ([]genai.Part, error) {
	if req.Image == nil || len(req.Image.Data) == 0 {
		return nil, ErrNoImage
	}
	mimeType := req.Image.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	blob := &genai.Blob{MIMEType: mimeType, Data: req.Image.Data}

	if req.Prompt != "" {
		return []genai.Part{genai.Text(req.Prompt), blob}, nil
	}
	return []genai.Part{blob}, nil
}

// ResponseText concatenates the text parts of the first candidate unchanged.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		if cand.FinishReason != genai.FinishReasonUnspecified {
			return "", fmt.Errorf("gemini: no content, finish reason %s", cand.FinishReason)
		}
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	found := false
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
			found = true
		}
	}
	if !found {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

var _ Generator = (*GeminiGenerator)(nil)
