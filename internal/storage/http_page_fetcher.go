package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrPageTooLarge is returned when a page body exceeds the configured limit.
var ErrPageTooLarge = errors.New("page body exceeds size limit")

type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)
}

// HTTPPageFetcher downloads patent pages with a single GET per call.
type HTTPPageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPPageFetcher creates a fetcher bounded by timeout and maxBytes.
func NewHTTPPageFetcher(timeout time.Duration, maxBytes int64) *HTTPPageFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 64 << 10,
	}

	return &HTTPPageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects (limit: 5)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

func (h *HTTPPageFetcher) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", "Go-Patent-Vision/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("server error: status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrPageTooLarge, h.maxBytes)
	}
	return body, nil
}
