package validation

import (
	"testing"

	apperrors "go-patent-vision/internal/errors"
)

func TestValidatePageURL_AnyHost(t *testing.T) {
	validator := NewURLValidator()

	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"SerpAPI patent link", "https://patents.google.com/patent/US1234567A/en", false},
		{"Padded link", "  https://patents.google.com/patent/EP0001234B1/de  ", false},
		{"Plain http mirror", "http://127.0.0.1:8080/patent/US1", false},
		{"Mixed-case scheme", "HTTPS://patents.google.com/patent/US1", false},
		{"Empty", "", true},
		{"Whitespace only", "   ", true},
		{"Broken escape", "https://patents.google.com/%zz", true},
		{"File scheme", "file:///etc/passwd", true},
		{"Javascript scheme", "javascript:alert(1)", true},
		{"Relative path", "/patent/US1234567A/en", true},
		{"Scheme without host", "https:///patent/US1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePageURL(tt.link)
			if tt.wantErr && err == nil {
				t.Fatalf("Expected %q to be rejected", tt.link)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected %q to pass, got %v", tt.link, err)
			}
			if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestValidatePageURL_AllowedHosts(t *testing.T) {
	validator := NewURLValidatorWithOptions(nil, []string{" Patents.Google.com ", "", "espacenet.com."})

	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{"Configured host", "https://patents.google.com/patent/US1234567A/en", false},
		{"Mixed-case host", "https://PATENTS.Google.COM/patent/US1234567A/en", false},
		{"Trailing root dot", "https://patents.google.com./patent/US1", false},
		{"Subdomain of configured host", "https://worldwide.espacenet.com/patent/search?q=EP1", false},
		{"Host with port", "https://patents.google.com:443/patent/US1", false},
		{"Parent of configured host", "https://google.com/patent/US1", true},
		{"Suffix lookalike", "https://evilespacenet.com/patent/EP1", true},
		{"Internal address", "http://169.254.169.254/latest/meta-data", true},
		{"Loopback", "http://localhost:8080/admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePageURL(tt.link)
			if tt.wantErr && err == nil {
				t.Fatalf("Expected %q to be rejected", tt.link)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected %q to pass, got %v", tt.link, err)
			}
		})
	}
}

func TestNewURLValidatorWithOptions_Normalizes(t *testing.T) {
	validator := NewURLValidatorWithOptions([]string{"HTTPS"}, []string{" Patents.Google.com. ", "  "})

	hosts := validator.AllowedHosts()
	if len(hosts) != 1 || hosts[0] != "patents.google.com" {
		t.Errorf("Expected normalized single host, got %v", hosts)
	}
	if err := validator.ValidatePageURL("http://patents.google.com/patent/US1"); err == nil {
		t.Error("Expected http to be rejected when only https is configured")
	}
	if err := validator.ValidatePageURL("https://patents.google.com/patent/US1"); err != nil {
		t.Errorf("Expected https link to pass, got %v", err)
	}
}
