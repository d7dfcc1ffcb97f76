// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags. API keys additionally fall back to environment variables.
type Config struct {
	// Paths
	Job        string `json:"job,omitempty"`        // Path to job description text file
	Candidates string `json:"candidates,omitempty"` // Path to candidates JSON file
	DataDir    string `json:"data_dir,omitempty"`   // Directory overriding embedded reference data

	// Matching
	TopN                int      `json:"top_n,omitempty"`
	PreferredCompanies  []string `json:"preferred_companies,omitempty"`
	PreferredIndustries []string `json:"preferred_industries,omitempty"`
	DesiredLocation     string   `json:"desired_location,omitempty"`
	AcceptableLocations []string `json:"acceptable_locations,omitempty"`
	RoleOverride        string   `json:"role_override,omitempty"`

	// Enrichment
	EnableEnrichment     bool   `json:"enable_enrichment,omitempty"`
	GoogleAPIKey         string `json:"google_api_key,omitempty"`
	GoogleCX             string `json:"google_cx,omitempty"`
	BraveAPIKey          string `json:"brave_api_key,omitempty"`
	CacheTTLHours        int    `json:"cache_ttl_hours,omitempty"`
	NotFoundTTLHours     int    `json:"not_found_ttl_hours,omitempty"`
	LookupTimeoutSeconds int    `json:"lookup_timeout_seconds,omitempty"`
	MaxLookupAttempts    int    `json:"max_lookup_attempts,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.CacheTTLHours < 0 {
		return fmt.Errorf("config error: 'cache_ttl_hours' must be non-negative")
	}
	if c.NotFoundTTLHours < 0 {
		return fmt.Errorf("config error: 'not_found_ttl_hours' must be non-negative")
	}
	if c.LookupTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'lookup_timeout_seconds' must be non-negative")
	}
	if c.MaxLookupAttempts < 0 {
		return fmt.Errorf("config error: 'max_lookup_attempts' must be non-negative")
	}
	if c.EnableEnrichment && c.GoogleAPIKey != "" && c.GoogleCX == "" {
		return fmt.Errorf("config error: 'google_cx' is required when 'google_api_key' is set")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Candidates != "" {
		if _, err := os.Stat(c.Candidates); os.IsNotExist(err) {
			return fmt.Errorf("config error: candidates file not found: %s", c.Candidates)
		}
	}
	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: data dir not found: %s", c.DataDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Candidates == "" {
		result.Candidates = defaults.Candidates
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DesiredLocation == "" {
		result.DesiredLocation = defaults.DesiredLocation
	}
	if result.RoleOverride == "" {
		result.RoleOverride = defaults.RoleOverride
	}
	if result.GoogleAPIKey == "" {
		result.GoogleAPIKey = defaults.GoogleAPIKey
	}
	if result.GoogleCX == "" {
		result.GoogleCX = defaults.GoogleCX
	}
	if result.BraveAPIKey == "" {
		result.BraveAPIKey = defaults.BraveAPIKey
	}

	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.NotFoundTTLHours == 0 {
		result.NotFoundTTLHours = defaults.NotFoundTTLHours
	}
	if result.LookupTimeoutSeconds == 0 {
		result.LookupTimeoutSeconds = defaults.LookupTimeoutSeconds
	}
	if result.MaxLookupAttempts == 0 {
		result.MaxLookupAttempts = defaults.MaxLookupAttempts
	}

	if len(result.PreferredCompanies) == 0 {
		result.PreferredCompanies = defaults.PreferredCompanies
	}
	if len(result.PreferredIndustries) == 0 {
		result.PreferredIndustries = defaults.PreferredIndustries
	}
	if len(result.AcceptableLocations) == 0 {
		result.AcceptableLocations = defaults.AcceptableLocations
	}

	if !result.EnableEnrichment {
		result.EnableEnrichment = defaults.EnableEnrichment
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// ApplyEnv fills API keys from environment variables when not already set.
func (c *Config) ApplyEnv() {
	if c.GoogleAPIKey == "" {
		c.GoogleAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if c.GoogleCX == "" {
		c.GoogleCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if c.BraveAPIKey == "" {
		c.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	}
}

// CacheTTL returns the configured candidate-cache TTL, or zero when unset so
// the enrichment layer applies its own default.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// NotFoundTTL returns the configured not-found TTL, or zero when unset.
func (c *Config) NotFoundTTL() time.Duration {
	return time.Duration(c.NotFoundTTLHours) * time.Hour
}

// LookupTimeout returns the configured per-call lookup timeout, or zero when
// unset.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.LookupTimeoutSeconds) * time.Second
}
