package validation

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	apperrors "go-patent-vision/internal/errors"
)

// URLValidator decides whether a link handed back by the search provider may
// be fetched by the server.
type URLValidator struct {
	schemes []string
	hosts   []string
}

// NewURLValidator accepts any http(s) host.
func NewURLValidator() *URLValidator {
	return NewURLValidatorWithOptions(nil, nil)
}

// NewURLValidatorWithOptions restricts links to the given schemes and hosts.
// No schemes means http and https; no hosts means any host. A host entry also
// admits its subdomains, so "google.com" covers "patents.google.com".
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	return &URLValidator{
		schemes: normalizeNames(schemes),
		hosts:   normalizeNames(hosts),
	}
}

// AllowedHosts returns the normalized host allow-list.
func (v *URLValidator) AllowedHosts() []string {
	return slices.Clone(v.hosts)
}

func (v *URLValidator) ValidatePageURL(pageURL string) error {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return apperrors.NewValidationError("page link is empty", nil)
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return apperrors.NewValidationError("page link is malformed", err)
	}
	if !slices.Contains(v.schemes, strings.ToLower(u.Scheme)) {
		return apperrors.NewValidationError(fmt.Sprintf("page link scheme %q is not allowed", u.Scheme), nil)
	}

	host := normalizeName(u.Hostname())
	if host == "" {
		return apperrors.NewValidationError("page link has no host", nil)
	}
	if !v.hostAllowed(host) {
		return apperrors.NewValidationError(fmt.Sprintf("page host %q is not allowed", host), nil)
	}
	return nil
}

func (v *URLValidator) hostAllowed(host string) bool {
	if len(v.hosts) == 0 {
		return true
	}
	for _, allowed := range v.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = normalizeName(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normalizeName lowercases and drops a trailing root dot.
func normalizeName(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}
