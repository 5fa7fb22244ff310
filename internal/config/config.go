// Package config handles loading and resolving reel configuration.
// Resolution order (first non-empty value wins):
//  1. CLI flags (--api-key, --language, ...)
//  2. Environment variables TMDB_API_KEY, TMDB_ACCESS_TOKEN, REEL_LANGUAGE
//  3. config.json (or config.toml) in the current working directory
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFile   = "config.json"
	DefaultTOMLFile     = "config.toml"
	DefaultFormat       = "table"
	DefaultTimeout      = 30 * time.Second
	DefaultConcurrency  = 4
	DefaultRate         = 5.0
	DefaultLanguage     = "en-US"
	DefaultDebounce     = 350 * time.Millisecond
	DefaultBaseURL      = "https://api.themoviedb.org/3/"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w342"
	EnvAPIKey           = "TMDB_API_KEY"
	EnvAccessToken      = "TMDB_ACCESS_TOKEN"
	EnvLanguage         = "REEL_LANGUAGE"
)

// File is the on-disk representation of config.json / config.toml.
type File struct {
	APIKey        string  `json:"api_key" toml:"api_key"`
	AccessToken   string  `json:"access_token,omitempty" toml:"access_token,omitempty"`
	DefaultFormat string  `json:"default_format" toml:"default_format"`
	Timeout       string  `json:"timeout" toml:"timeout"`
	Concurrency   int     `json:"concurrency" toml:"concurrency"`
	Rate          float64 `json:"rate" toml:"rate"`
	BaseURL       string  `json:"base_url" toml:"base_url"`
	ImageBaseURL  string  `json:"image_base_url" toml:"image_base_url"`
	Language      string  `json:"language" toml:"language"`
	Debounce      string  `json:"debounce" toml:"debounce"`
}

// Keys lists the settable config keys in display order.
var Keys = []string{
	"api_key", "access_token", "default_format", "timeout", "concurrency",
	"rate", "base_url", "image_base_url", "language", "debounce",
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	APIKey       string
	AccessToken  string
	Format       string
	Timeout      time.Duration
	Concurrency  int
	Rate         float64
	BaseURL      string
	ImageBaseURL string
	Language     string
	Debounce     time.Duration
	ConfigPath   string // path of the config file that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool
	Debug   bool
	Pager   string
}

// Load resolves configuration from all sources.
// flagAPIKey is the value of --api-key (empty string if not set).
func Load(flagAPIKey string) (*Config, error) {
	cfg := &Config{
		Format:       DefaultFormat,
		Timeout:      DefaultTimeout,
		Concurrency:  DefaultConcurrency,
		Rate:         DefaultRate,
		BaseURL:      DefaultBaseURL,
		ImageBaseURL: DefaultImageBaseURL,
		Language:     DefaultLanguage,
		Debounce:     DefaultDebounce,
	}

	// Layer 1: config file (lowest priority)
	f, path, err := LoadFile()
	switch {
	case err == nil:
		applyFile(cfg, f, path)
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	// Layer 2: environment
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvAccessToken); v != "" {
		cfg.AccessToken = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
	}

	// Layer 3: CLI flag (highest priority)
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}

	return cfg, nil
}

// Validate returns an error if required fields are missing.
func (c *Config) Validate() error {
	if c.APIKey == "" && c.AccessToken == "" {
		return errors.New(
			"API key not found.\n\n" +
				"Set it one of these ways:\n" +
				"  1. CLI flag:        reel --api-key YOUR_KEY ...\n" +
				"  2. Environment:     export TMDB_API_KEY=YOUR_KEY\n" +
				"  3. config.json:     {\"api_key\": \"YOUR_KEY\"}\n\n" +
				"Get a free key at https://www.themoviedb.org/settings/api",
		)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// RedactedAPIKey returns the API key with most characters replaced by asterisks.
// Safe for logging and display.
func (c *Config) RedactedAPIKey() string {
	return redact(c.APIKey)
}

// RedactedAccessToken is RedactedAPIKey for the bearer token.
func (c *Config) RedactedAccessToken() string {
	return redact(c.AccessToken)
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

// LoadFile reads config.json, or config.toml when there is no JSON file,
// from the current working directory. The error wraps os.ErrNotExist when
// neither exists.
func LoadFile() (*File, string, error) {
	for _, name := range []string{DefaultConfigFile, DefaultTOMLFile} {
		path, err := filepath.Abs(name)
		if err != nil {
			return nil, "", err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := decode(path, data)
		if err != nil {
			return nil, "", err
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("no %s or %s in working directory: %w", DefaultConfigFile, DefaultTOMLFile, os.ErrNotExist)
}

func decode(path string, data []byte) (*File, error) {
	var f File
	if isTOML(path) {
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return &f, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &f, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.APIKey != "" {
		cfg.APIKey = f.APIKey
	}
	if f.AccessToken != "" {
		cfg.AccessToken = f.AccessToken
	}
	if f.DefaultFormat != "" {
		cfg.Format = f.DefaultFormat
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.Rate > 0 {
		cfg.Rate = f.Rate
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.ImageBaseURL != "" {
		cfg.ImageBaseURL = f.ImageBaseURL
	}
	if f.Language != "" {
		cfg.Language = f.Language
	}
	if f.Debounce != "" {
		if d, err := time.ParseDuration(f.Debounce); err == nil && d > 0 {
			cfg.Debounce = d
		}
	}
}

// Set assigns one key by name, validating numeric and duration values.
func (f *File) Set(key, val string) error {
	switch strings.ToLower(key) {
	case "api_key":
		f.APIKey = val
	case "access_token":
		f.AccessToken = val
	case "default_format", "format":
		f.DefaultFormat = val
	case "timeout":
		if _, err := time.ParseDuration(val); err != nil {
			return fmt.Errorf("timeout must be a duration like 30s: %w", err)
		}
		f.Timeout = val
	case "concurrency":
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer")
		}
		f.Concurrency = n
	case "rate":
		r, err := strconv.ParseFloat(val, 64)
		if err != nil || r <= 0 {
			return fmt.Errorf("rate must be a positive number")
		}
		f.Rate = r
	case "base_url":
		f.BaseURL = val
	case "image_base_url":
		f.ImageBaseURL = val
	case "language":
		f.Language = val
	case "debounce":
		if _, err := time.ParseDuration(val); err != nil {
			return fmt.Errorf("debounce must be a duration like 350ms: %w", err)
		}
		f.Debounce = val
	default:
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config file via `reel config init`.
func Template() File {
	return File{
		APIKey:        "",
		DefaultFormat: DefaultFormat,
		Timeout:       "30s",
		Concurrency:   DefaultConcurrency,
		Rate:          DefaultRate,
		BaseURL:       DefaultBaseURL,
		ImageBaseURL:  DefaultImageBaseURL,
		Language:      DefaultLanguage,
		Debounce:      DefaultDebounce.String(),
	}
}

// WriteFile serialises a File to the given path. A .toml extension selects
// TOML; anything else is written as indented JSON.
func WriteFile(path string, f File) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
