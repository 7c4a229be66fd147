package models

// PatentRecord holds the fields scraped from a patent page. Every field is
// independently optional; nil means the page did not carry it.
type PatentRecord struct {
	Title     *string `json:"title"`
	Inventors *string `json:"inventors"`
	Assignee  *string `json:"assignee"`
}

// LookupStatus is the outcome of a patent lookup.
type LookupStatus string

const (
	LookupFound       LookupStatus = "found"
	LookupNotFound    LookupStatus = "not_found"
	LookupFetchFailed LookupStatus = "fetch_failed"
)

// LookupResult is what the lookup pipeline hands back to the UI.
type LookupResult struct {
	PatentID string          `json:"patent_id"`
	Status   LookupStatus    `json:"status"`
	URL      string          `json:"url,omitempty"`
	Record   *PatentRecord   `json:"record"`
	Messages []StatusMessage `json:"messages"`
}
