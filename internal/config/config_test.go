package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points ENV_FILE at a path that does not exist and clears the
// variables the tests depend on.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		"HOST", "PORT", "SERPAPI_API_KEY", "GOOGLE_API_KEY", "SEARCH_LANGUAGE",
		"SEARCH_TIMEOUT", "MAX_IMAGE_SIZE", "MAX_REQUEST_BODY_SIZE", "SELECTOR_TITLE",
		"SERPAPI_BASE_URL", "GEMINI_MODEL", "GIN_MODE", "PAGE_ALLOWED_HOSTS",
		"SELECTOR_INVENTORS_LIST", "SELECTOR_INVENTOR_ITEM", "SELECTOR_ASSIGNEE_CONTAINER",
		"SELECTOR_ASSIGNEE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected defaults to load, got error: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected default address 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
	if cfg.SearchLanguage != "en" {
		t.Errorf("Expected default search language 'en', got %q", cfg.SearchLanguage)
	}
	if cfg.SerpAPIBaseURL != "https://serpapi.com" {
		t.Errorf("Unexpected SerpAPI base URL %q", cfg.SerpAPIBaseURL)
	}
	if cfg.SearchTimeout != 15*time.Second {
		t.Errorf("Expected 15s search timeout, got %s", cfg.SearchTimeout)
	}
	if cfg.Selectors.Title != "" {
		t.Errorf("Expected no selector override, got %q", cfg.Selectors.Title)
	}
	if len(cfg.PageAllowedHosts) != 0 {
		t.Errorf("Expected no host allow-list by default, got %v", cfg.PageAllowedHosts)
	}

	missing := cfg.MissingKeys()
	if len(missing) != 2 || missing[0] != SerpAPIKeyEnv || missing[1] != GoogleAPIKeyEnv {
		t.Errorf("Expected both provider keys reported missing, got %v", missing)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERPAPI_API_KEY", " serp-key ")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("SEARCH_LANGUAGE", "de")
	t.Setenv("SEARCH_TIMEOUT", "3s")
	t.Setenv("SERPAPI_BASE_URL", "http://localhost:1234/")
	t.Setenv("SELECTOR_TITLE", "h1.title")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.SerpAPIKey != "serp-key" {
		t.Errorf("Expected trimmed SerpAPI key, got %q", cfg.SerpAPIKey)
	}
	if cfg.SearchLanguage != "de" {
		t.Errorf("Expected search language 'de', got %q", cfg.SearchLanguage)
	}
	if cfg.SearchTimeout != 3*time.Second {
		t.Errorf("Expected 3s search timeout, got %s", cfg.SearchTimeout)
	}
	if cfg.SerpAPIBaseURL != "http://localhost:1234" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.SerpAPIBaseURL)
	}
	if cfg.Selectors.Title != "h1.title" {
		t.Errorf("Expected title selector override, got %q", cfg.Selectors.Title)
	}
	if len(cfg.MissingKeys()) != 0 {
		t.Errorf("Expected no missing keys, got %v", cfg.MissingKeys())
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	isolate(t)

	for _, port := range []string{"abc", "0", "70000"} {
		t.Setenv("PORT", port)
		if _, err := LoadFromEnv(); err == nil || !strings.Contains(err.Error(), "invalid PORT") {
			t.Errorf("Expected invalid PORT error for %q, got %v", port, err)
		}
	}
}

func TestLoadFromEnv_ImageLargerThanBody(t *testing.T) {
	isolate(t)
	t.Setenv("MAX_IMAGE_SIZE", "2048")
	t.Setenv("MAX_REQUEST_BODY_SIZE", "1024")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error when image limit exceeds body limit")
	}
}

func TestLoadFromEnv_EnvFile(t *testing.T) {
	isolate(t)
	t.Setenv("SERPAPI_API_KEY", "")
	// godotenv never overrides variables that are already set, even to "".
	os.Unsetenv("SERPAPI_API_KEY")

	envFile := filepath.Join(t.TempDir(), "local.env")
	if err := os.WriteFile(envFile, []byte("SERPAPI_API_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() { os.Unsetenv("SERPAPI_API_KEY") })

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.SerpAPIKey != "from-file" {
		t.Errorf("Expected key from env file, got %q", cfg.SerpAPIKey)
	}
}

func TestLoadFromEnv_PageAllowedHosts(t *testing.T) {
	isolate(t)
	t.Setenv("PAGE_ALLOWED_HOSTS", " patents.google.com, ,worldwide.espacenet.com ,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"patents.google.com", "worldwide.espacenet.com"}
	if len(cfg.PageAllowedHosts) != len(want) {
		t.Fatalf("Expected hosts %v, got %v", want, cfg.PageAllowedHosts)
	}
	for i := range want {
		if cfg.PageAllowedHosts[i] != want[i] {
			t.Errorf("Expected host %q at %d, got %q", want[i], i, cfg.PageAllowedHosts[i])
		}
	}
}

func TestLoadFromEnv_InvalidSelector(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"SELECTOR_TITLE", "h1[["},
		{"SELECTOR_INVENTORS_LIST", "ul.inventors-list >"},
		{"SELECTOR_INVENTOR_ITEM", "li:nth-child("},
		{"SELECTOR_ASSIGNEE_CONTAINER", "div..assignee"},
		{"SELECTOR_ASSIGNEE_NAME", "span#"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)

			_, err := LoadFromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.env) {
				t.Errorf("Expected error naming %s for %q, got %v", tt.env, tt.value, err)
			}
		})
	}
}

func TestLoadFromEnv_ValidSelectorOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SELECTOR_TITLE", "h1#patent-title, h1.title")
	t.Setenv("SELECTOR_INVENTOR_ITEM", "dd:not(.empty)")

	if _, err := LoadFromEnv(); err != nil {
		t.Errorf("Expected valid selectors to load, got %v", err)
	}
}

func TestLoadFromEnv_InvalidGinMode(t *testing.T) {
	isolate(t)
	t.Setenv("GIN_MODE", "verbose")

	if _, err := LoadFromEnv(); err == nil || !strings.Contains(err.Error(), "GIN_MODE") {
		t.Errorf("Expected invalid GIN_MODE error, got %v", err)
	}
}
