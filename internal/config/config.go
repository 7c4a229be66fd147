package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
)

// Environment variable names for the provider keys. The lookup is by exact
// name: a key stored under any other name silently disables its pipeline.
const (
	SerpAPIKeyEnv   = "SERPAPI_API_KEY"
	GoogleAPIKeyEnv = "GOOGLE_API_KEY"
)

type Config struct {
	Host               string
	Port               string
	GinMode            string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64

	// Patent lookup
	SerpAPIKey       string
	SerpAPIBaseURL   string
	SearchLanguage   string
	SearchTimeout    time.Duration
	PageFetchTimeout time.Duration
	MaxPageSize      int64
	PageAllowedHosts []string
	Selectors        SelectorConfig

	// Image description
	GoogleAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration
	MaxImageSize      int64
}

// SelectorConfig carries optional overrides for the patent page selectors.
// Empty fields fall back to the extractor defaults.
type SelectorConfig struct {
	Title             string
	InventorsList     string
	InventorItem      string
	AssigneeContainer string
	AssigneeName      string
}

// validate compiles every override so a typo fails at startup instead of
// silently matching nothing on each lookup.
func (s SelectorConfig) validate() error {
	overrides := []struct{ env, value string }{
		{"SELECTOR_TITLE", s.Title},
		{"SELECTOR_INVENTORS_LIST", s.InventorsList},
		{"SELECTOR_INVENTOR_ITEM", s.InventorItem},
		{"SELECTOR_ASSIGNEE_CONTAINER", s.AssigneeContainer},
		{"SELECTOR_ASSIGNEE_NAME", s.AssigneeName},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		if _, err := cascadia.Compile(o.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", o.env, o.value, err)
		}
	}
	return nil
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// MissingKeys lists the provider key variables that resolved to nothing.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.SerpAPIKey == "" {
		missing = append(missing, SerpAPIKeyEnv)
	}
	if c.GoogleAPIKey == "" {
		missing = append(missing, GoogleAPIKeyEnv)
	}
	return missing
}

// LoadFromEnv reads the optional env file (ENV_FILE, default ".env") and then
// builds the configuration from the process environment.
func LoadFromEnv() (*Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		GinMode:            getEnvOrDefault("GIN_MODE", "release"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 12*1024*1024), // 12MB

		SerpAPIKey:       strings.TrimSpace(os.Getenv(SerpAPIKeyEnv)),
		SerpAPIBaseURL:   strings.TrimRight(getEnvOrDefault("SERPAPI_BASE_URL", "https://serpapi.com"), "/"),
		SearchLanguage:   getEnvOrDefault("SEARCH_LANGUAGE", "en"),
		SearchTimeout:    parseDurationOrDefault("SEARCH_TIMEOUT", 15*time.Second),
		PageFetchTimeout: parseDurationOrDefault("PAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxPageSize:      parseIntOrDefault("MAX_PAGE_SIZE", 5*1024*1024), // 5MB
		PageAllowedHosts: parseListOrDefault("PAGE_ALLOWED_HOSTS", nil),
		Selectors: SelectorConfig{
			Title:             strings.TrimSpace(os.Getenv("SELECTOR_TITLE")),
			InventorsList:     strings.TrimSpace(os.Getenv("SELECTOR_INVENTORS_LIST")),
			InventorItem:      strings.TrimSpace(os.Getenv("SELECTOR_INVENTOR_ITEM")),
			AssigneeContainer: strings.TrimSpace(os.Getenv("SELECTOR_ASSIGNEE_CONTAINER")),
			AssigneeName:      strings.TrimSpace(os.Getenv("SELECTOR_ASSIGNEE_NAME")),
		},

		GoogleAPIKey:      strings.TrimSpace(os.Getenv(GoogleAPIKeyEnv)),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GenerationTimeout: parseDurationOrDefault("GENERATION_TIMEOUT", 45*time.Second),
		MaxImageSize:      parseIntOrDefault("MAX_IMAGE_SIZE", 10*1024*1024), // 10MB
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise surface as confusing runtime failures.
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 || c.MaxPageSize <= 0 || c.MaxImageSize <= 0 {
		return fmt.Errorf("size limits must be > 0 (got body=%d, page=%d, image=%d)",
			c.MaxRequestBodySize, c.MaxPageSize, c.MaxImageSize)
	}
	if c.MaxImageSize > c.MaxRequestBodySize {
		return fmt.Errorf("MAX_IMAGE_SIZE (%d) must not exceed MAX_REQUEST_BODY_SIZE (%d)",
			c.MaxImageSize, c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.SearchTimeout <= 0 || c.PageFetchTimeout <= 0 || c.GenerationTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, search=%s, fetch=%s, generation=%s)",
			c.RequestTimeout, c.SearchTimeout, c.PageFetchTimeout, c.GenerationTimeout)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE: %q", c.GinMode)
	}
	if err := c.Selectors.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.SearchLanguage) == "" {
		return fmt.Errorf("SEARCH_LANGUAGE must not be empty")
	}
	if strings.TrimSpace(c.GeminiModel) == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseListOrDefault splits a comma-separated variable, dropping blank entries.
func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
