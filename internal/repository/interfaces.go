package repository

import "context"

// PatentPageRepository defines access to patent pages discovered by search
type PatentPageRepository interface {
	// FetchPage validates pageURL and downloads its body
	FetchPage(ctx context.Context, pageURL string) ([]byte, error)

	// ValidatePageURL validates if the provided URL is acceptable
	ValidatePageURL(pageURL string) error
}
