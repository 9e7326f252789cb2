// Package config provides configuration loading for omnisuggest using
// Pkl, the same layered-evaluation approach the source browser uses
// for its own settings.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apple/pkl-go/pkl"
)

// Suggestions controls the suggestion processor's budget caps. These
// are compile-time-visible defaults that a user config may still
// override for experimentation; production callers should prefer the
// package constants in suggest.
type Suggestions struct {
	MaximumTotal   int `json:"maximumTotal"`
	MaximumTopHits int `json:"maximumTopHits"`
	MinimumInGroup int `json:"minimumInGroup"`
}

// Tracker controls the blocked-tracker aggregator.
type Tracker struct {
	DebounceIntervalSeconds float64 `json:"debounceIntervalSeconds"`
	RetentionDays           int     `json:"retentionDays"`
}

// DebounceInterval returns the configured debounce as a time.Duration.
func (t Tracker) DebounceInterval() time.Duration {
	return time.Duration(t.DebounceIntervalSeconds * float64(time.Second))
}

// Autocomplete controls the remote suggestion client.
type Autocomplete struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Timeout returns the configured timeout as a time.Duration.
func (a Autocomplete) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Platform selects the top-hits rule for bookmarks: desktop requires
// is_favorite, mobile always allows.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformMobile  Platform = "mobile"
)

// Config is the main configuration struct.
type Config struct {
	Suggestions  Suggestions  `json:"suggestions"`
	Tracker      Tracker      `json:"tracker"`
	Autocomplete Autocomplete `json:"autocomplete"`
	Platform     Platform     `json:"platform"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Suggestions: Suggestions{
			MaximumTotal:   12,
			MaximumTopHits: 2,
			MinimumInGroup: 5,
		},
		Tracker: Tracker{
			DebounceIntervalSeconds: 1,
			RetentionDays:           7,
		},
		Autocomplete: Autocomplete{
			Endpoint:       "https://duckduckgo.com/ac/",
			TimeoutSeconds: 60,
		},
		Platform: PlatformDesktop,
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "omnisuggest"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.pkl"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromPkl(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	return merge(cfg, userCfg), nil
}

// loadFromPkl evaluates a Pkl config file and returns the config.
func loadFromPkl(path string) (*Config, error) {
	evaluator, err := pkl.NewEvaluator(context.Background(), pkl.PreconfiguredOptions)
	if err != nil {
		return nil, fmt.Errorf("creating pkl evaluator: %w", err)
	}
	defer evaluator.Close()

	jsonBytes, err := evaluator.EvaluateExpressionRaw(context.Background(), pkl.FileSource(path), "new JsonRenderer {}.renderValue(this)")
	if err != nil {
		return nil, err
	}

	jsonStr := string(jsonBytes)
	start := 0
	for i, c := range jsonStr {
		if c == '{' {
			start = i
			break
		}
	}
	jsonStr = jsonStr[start:]

	var cfg Config
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config JSON: %w", err)
	}
	return &cfg, nil
}

// merge layers user config on top of defaults. Only non-zero values
// from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Suggestions.MaximumTotal != 0 {
		result.Suggestions.MaximumTotal = user.Suggestions.MaximumTotal
	}
	if user.Suggestions.MaximumTopHits != 0 {
		result.Suggestions.MaximumTopHits = user.Suggestions.MaximumTopHits
	}
	if user.Suggestions.MinimumInGroup != 0 {
		result.Suggestions.MinimumInGroup = user.Suggestions.MinimumInGroup
	}

	if user.Tracker.DebounceIntervalSeconds != 0 {
		result.Tracker.DebounceIntervalSeconds = user.Tracker.DebounceIntervalSeconds
	}
	if user.Tracker.RetentionDays != 0 {
		result.Tracker.RetentionDays = user.Tracker.RetentionDays
	}

	if user.Autocomplete.Endpoint != "" {
		result.Autocomplete.Endpoint = user.Autocomplete.Endpoint
	}
	if user.Autocomplete.TimeoutSeconds != 0 {
		result.Autocomplete.TimeoutSeconds = user.Autocomplete.TimeoutSeconds
	}

	if user.Platform != "" {
		result.Platform = user.Platform
	}

	return &result
}

// DefaultPkl returns the default configuration as a Pkl string,
// suitable as the starting content of a user config file.
func DefaultPkl() string {
	return `// omnisuggest configuration
// Save to ~/.config/omnisuggest/config.pkl and customize.
// Only include settings you want to change from defaults.

// Suggestion processor budget
suggestions = new {
  maximumTotal = 12
  maximumTopHits = 2
  minimumInGroup = 5
}

// Blocked-tracker aggregator
tracker = new {
  debounceIntervalSeconds = 1
  retentionDays = 7
}

// Remote autocomplete client
autocomplete = new {
  endpoint = "https://duckduckgo.com/ac/"
  timeoutSeconds = 60
}

// "desktop" or "mobile" -- controls the bookmark top-hits rule
platform = "desktop"
`
}

// FormatError formats a Pkl evaluation error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
