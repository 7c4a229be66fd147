package models

// PatentLookupRequest is the JSON body of the lookup API.
type PatentLookupRequest struct {
	PatentID string `json:"patent_id" form:"patent_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Time    string   `json:"time"`
	Missing []string `json:"missing_keys,omitempty"`
}
