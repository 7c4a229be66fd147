package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned when the SerpAPI key did not resolve from
// configuration.
var ErrMissingAPIKey = errors.New("serpapi: api key is empty")

const patentsEngine = "google_patents"

// noResultsMarker identifies the "error" text SerpAPI returns with a 200 when
// a search simply matched nothing.
const noResultsMarker = "hasn't returned any results"

// PatentSearcher finds the page of a patent.
type PatentSearcher interface {
	// FirstResultURL returns the link of the first organic result. ok is
	// false when the provider returned no organic results.
	FirstResultURL(ctx context.Context, patentID string) (link string, ok bool, err error)
}

// Options configures a SerpAPI client.
type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// SerpAPIClient queries the google_patents engine of SerpAPI.
type SerpAPIClient struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

func NewSerpAPIClient(opts Options) *SerpAPIClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = "en"
	}
	return &SerpAPIClient{
		apiKey:   strings.TrimSpace(opts.APIKey),
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		language: language,
		client:   &http.Client{Timeout: timeout},
	}
}

// BuildQuery formats the free-text query sent to the patents engine.
func BuildQuery(patentID, language string) string {
	return fmt.Sprintf("patent %s (%s)", strings.TrimSpace(patentID), language)
}

type organicResult struct {
	Link       string `json:"link"`
	PatentLink string `json:"patent_link"`
	Title      string `json:"title"`
}

type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error,omitempty"`
}

func (c *SerpAPIClient) FirstResultURL(ctx context.Context, patentID string) (string, bool, error) {
	if c.apiKey == "" {
		return "", false, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("engine", patentsEngine)
	params.Set("q", BuildQuery(patentID, c.language))
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/search.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("serpapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("serpapi %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if len(out.OrganicResults) == 0 {
		if out.Error != "" && !strings.Contains(out.Error, noResultsMarker) {
			return "", false, fmt.Errorf("serpapi: %s", out.Error)
		}
		return "", false, nil
	}

	first := out.OrganicResults[0]
	link := strings.TrimSpace(first.Link)
	if link == "" {
		link = strings.TrimSpace(first.PatentLink)
	}
	if link == "" {
		return "", false, nil
	}
	return link, true, nil
}
