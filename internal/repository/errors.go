package repository

import "errors"

var (
	// ErrInvalidPageURL indicates the search provider returned an unusable link
	ErrInvalidPageURL = errors.New("invalid patent page URL")

	// ErrPageUnavailable indicates the patent page could not be downloaded
	ErrPageUnavailable = errors.New("patent page unavailable")
)
