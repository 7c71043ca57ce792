package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2wechat/internal/dateutil"
	"github.com/alnah/go-md2wechat/internal/fileutil"
	"github.com/alnah/go-md2wechat/internal/pipeline"
	"github.com/alnah/go-md2wechat/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appConfigDir is the directory name under the user config directory.
const appConfigDir = "go-md2wechat"

// Field length limits.
const (
	MaxEnvNameLength   = 100  // environment variable name
	MaxModelLength     = 100  // model identifier
	MaxStyleLength     = 50   // persona key
	MaxThemeNameLength = 64   // asset name
	MaxPathLength      = 4096 // filesystem path
	MaxCSSLength       = 2000 // one role's declarations
	MaxDurationLength  = 20   // "1500ms", "2s"
	MaxURLLength       = 2048 // endpoint URL
	MaxDateLength      = 100  // "auto:FORMAT" or literal
)

// Numeric bounds.
const (
	MinWordCount     = 1000
	MaxWordCount     = 3000
	MinOutputTokens  = 256
	MaxOutputTokens  = 65536
	MaxImageAttempts = 10
)

// Config holds all configuration for article generation and rendering.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Article ArticleConfig `yaml:"article"`
	Images  ImagesConfig  `yaml:"images"`
	Theme   ThemeConfig   `yaml:"theme"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// GeminiConfig defines the generation backend.
type GeminiConfig struct {
	APIKeyEnv       string `yaml:"apiKeyEnv"`       // env var holding the key (default GEMINI_API_KEY)
	TextModel       string `yaml:"textModel"`       // default gemini-2.0-flash
	ImageModel      string `yaml:"imageModel"`      // default imagen-3.0-generate-001
	MaxOutputTokens int    `yaml:"maxOutputTokens"` // default 8192
	BaseURL         string `yaml:"baseURL"`         // optional reverse proxy endpoint
}

// ArticleConfig defines article defaults.
type ArticleConfig struct {
	Style     string `yaml:"style"`     // persona key
	WordCount int    `yaml:"wordCount"` // 1000-3000
}

// ImagesConfig defines the sequential image queue.
// Durations use Go syntax ("1s", "1500ms").
type ImagesConfig struct {
	Spacing  string `yaml:"spacing"`  // pause between images (default 1s)
	Attempts int    `yaml:"attempts"` // tries per image (default 2)
	Backoff  string `yaml:"backoff"`  // base backoff, multiplied by attempt (default 2s)
}

// ThemeConfig selects a theme and overrides single roles.
type ThemeConfig struct {
	Name      string            `yaml:"name"`      // built-in or custom theme (default classic)
	Overrides map[string]string `yaml:"overrides"` // role → inline CSS
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = current directory
}

// PreviewConfig defines the PDF preview.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // default 30s
	Date    string `yaml:"date"`    // "auto", "auto:FORMAT" or literal (default auto)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// SpacingDuration returns the parsed spacing, or zero when unset.
func (c ImagesConfig) SpacingDuration() time.Duration { return mustDuration(c.Spacing) }

// BackoffDuration returns the parsed backoff base, or zero when unset.
func (c ImagesConfig) BackoffDuration() time.Duration { return mustDuration(c.Backoff) }

// TimeoutDuration returns the parsed preview timeout, or zero when unset.
func (c PreviewConfig) TimeoutDuration() time.Duration { return mustDuration(c.Timeout) }

// mustDuration parses a duration already checked by Validate.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths, ranges and formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"gemini.apiKeyEnv", c.Gemini.APIKeyEnv, MaxEnvNameLength},
		{"gemini.textModel", c.Gemini.TextModel, MaxModelLength},
		{"gemini.imageModel", c.Gemini.ImageModel, MaxModelLength},
		{"gemini.baseURL", c.Gemini.BaseURL, MaxURLLength},
		{"article.style", c.Article.Style, MaxStyleLength},
		{"images.spacing", c.Images.Spacing, MaxDurationLength},
		{"images.backoff", c.Images.Backoff, MaxDurationLength},
		{"theme.name", c.Theme.Name, MaxThemeNameLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"preview.timeout", c.Preview.Timeout, MaxDurationLength},
		{"preview.date", c.Preview.Date, MaxDateLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if n := c.Gemini.MaxOutputTokens; n != 0 && (n < MinOutputTokens || n > MaxOutputTokens) {
		return fmt.Errorf("%w: gemini.maxOutputTokens must be between %d and %d, got %d",
			ErrInvalidValue, MinOutputTokens, MaxOutputTokens, n)
	}

	if n := c.Article.WordCount; n != 0 && (n < MinWordCount || n > MaxWordCount) {
		return fmt.Errorf("%w: article.wordCount must be between %d and %d, got %d",
			ErrInvalidValue, MinWordCount, MaxWordCount, n)
	}

	if n := c.Images.Attempts; n < 0 || n > MaxImageAttempts {
		return fmt.Errorf("%w: images.attempts must be between 0 (default) and %d, got %d",
			ErrInvalidValue, MaxImageAttempts, n)
	}

	if u := c.Gemini.BaseURL; u != "" && !strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") {
		return fmt.Errorf("%w: gemini.baseURL must be an http(s) URL, got %q", ErrInvalidValue, u)
	}

	for _, d := range []struct{ name, value string }{
		{"images.spacing", c.Images.Spacing},
		{"images.backoff", c.Images.Backoff},
		{"preview.timeout", c.Preview.Timeout},
	} {
		if err := validateDuration(d.name, d.value); err != nil {
			return err
		}
	}

	if _, err := dateutil.ResolveDate(c.Preview.Date, time.Now()); err != nil {
		return fmt.Errorf("%w: preview.date: %v", ErrInvalidValue, err)
	}

	for role, css := range c.Theme.Overrides {
		if !pipeline.IsThemeRole(role) {
			return fmt.Errorf("%w: theme.overrides: unknown role %q", ErrInvalidValue, role)
		}
		if err := validateFieldLength("theme.overrides."+role, css, MaxCSSLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDuration accepts empty values and non-negative Go durations.
func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %q is not a duration (e.g. 1s, 1500ms)", ErrInvalidValue, fieldName, value)
	}
	if d < 0 {
		return fmt.Errorf("%w: %s: must not be negative", ErrInvalidValue, fieldName)
	}
	return nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKeyEnv:       "GEMINI_API_KEY",
			TextModel:       "gemini-2.0-flash",
			ImageModel:      "imagen-3.0-generate-001",
			MaxOutputTokens: 8192,
		},
		Article: ArticleConfig{Style: "中医科普风", WordCount: 1750},
		Images:  ImagesConfig{Spacing: "1s", Attempts: 2, Backoff: "2s"},
		Theme:   ThemeConfig{Name: "classic"},
		Preview: PreviewConfig{Enabled: false, Timeout: "30s", Date: "auto"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2wechat/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appConfigDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
