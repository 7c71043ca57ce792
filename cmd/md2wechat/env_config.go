package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2wechat/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2WECHAT_CONFIG: config file name or path
	Style      string        // MD2WECHAT_STYLE: persona key
	Theme      string        // MD2WECHAT_THEME: theme name
	WordCount  int           // MD2WECHAT_WORDS: target length
	OutputDir  string        // MD2WECHAT_OUTPUT_DIR: default output directory
	Timeout    time.Duration // MD2WECHAT_TIMEOUT: command deadline
	Workers    int           // MD2WECHAT_WORKERS: parallel render workers
}

// knownEnvVars lists valid MD2WECHAT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2WECHAT_CONFIG":     true,
	"MD2WECHAT_STYLE":      true,
	"MD2WECHAT_THEME":      true,
	"MD2WECHAT_WORDS":      true,
	"MD2WECHAT_OUTPUT_DIR": true,
	"MD2WECHAT_TIMEOUT":    true,
	"MD2WECHAT_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2WECHAT_CONFIG"),
		Style:      getenv("MD2WECHAT_STYLE"),
		Theme:      getenv("MD2WECHAT_THEME"),
		OutputDir:  getenv("MD2WECHAT_OUTPUT_DIR"),
	}

	if timeout := getenv("MD2WECHAT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if words := getenv("MD2WECHAT_WORDS"); words != "" {
		if n, err := strconv.Atoi(words); err == nil && n > 0 {
			cfg.WordCount = n
		}
	}

	if workers := getenv("MD2WECHAT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2WECHAT_*
// entry of environ (as returned by os.Environ).
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "MD2WECHAT_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set environment values over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Article.Style = env.Style
	}
	if env.WordCount != 0 {
		cfg.Article.WordCount = env.WordCount
	}
	if env.Theme != "" {
		cfg.Theme.Name = env.Theme
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
