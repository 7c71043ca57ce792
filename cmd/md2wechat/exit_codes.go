package main

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/gemini"
	"github.com/alnah/go-md2wechat/internal/hints"
	"github.com/alnah/go-md2wechat/internal/pipeline"
	"github.com/alnah/go-md2wechat/internal/yamlutil"
)

// Exit codes for md2wechat CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful run
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitGeneration = 4 // Upstream text or image generation errors
	ExitBrowser    = 5 // Browser/Chrome errors during preview
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 5)
	if errors.Is(err, md2wechat.ErrBrowserConnect) ||
		errors.Is(err, md2wechat.ErrPageCreate) ||
		errors.Is(err, md2wechat.ErrPageLoad) ||
		errors.Is(err, md2wechat.ErrPDFGeneration) ||
		errors.Is(err, md2wechat.ErrPreviewRender) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, gemini.ErrNoAPIKey) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, md2wechat.ErrEmptyMarkdown) ||
		errors.Is(err, md2wechat.ErrEmptyTopic) ||
		errors.Is(err, md2wechat.ErrTopicTooLong) ||
		errors.Is(err, md2wechat.ErrUnknownStyle) ||
		errors.Is(err, md2wechat.ErrInvalidWordCount) ||
		errors.Is(err, md2wechat.ErrInvalidTheme) ||
		errors.Is(err, md2wechat.ErrInvalidDate) ||
		errors.Is(err, md2wechat.ErrUnknownRole) ||
		errors.Is(err, md2wechat.ErrThemeNotFound) ||
		errors.Is(err, md2wechat.ErrTemplateNotFound) ||
		errors.Is(err, md2wechat.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadImages) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, pipeline.ErrImagePathOutsideDir) ||
		errors.Is(err, pipeline.ErrImageTooLarge) ||
		errors.Is(err, pipeline.ErrNotAnImage) {
		return ExitIO
	}

	// Upstream generation errors (exit 4)
	if errors.Is(err, md2wechat.ErrTextGeneration) ||
		md2wechat.IsStage(err, md2wechat.StageWriting) ||
		md2wechat.IsStage(err, md2wechat.StageImagining) ||
		md2wechat.IsStage(err, md2wechat.StageCover) ||
		gemini.IsRateLimit(err) ||
		gemini.IsAuthError(err) {
		return ExitGeneration
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
// apiKeyEnv names the variable the API key was read from.
func hintFor(err error, apiKeyEnv string) string {
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case gemini.IsAuthError(err):
		return hints.ForAPIKey(apiKeyEnv)
	case gemini.IsRateLimit(err):
		return hints.ForRateLimit()
	case errors.Is(err, md2wechat.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2wechat.ErrThemeNotFound):
		return hints.ForThemeNotFound(md2wechat.ThemeNames())
	case errors.Is(err, md2wechat.ErrUnknownStyle):
		return hints.ForUnknownStyle(styleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.As(err, &netErr):
		return hints.ForNetwork()
	}
	return ""
}

// styleNames returns the persona keys as strings.
func styleNames() []string {
	styles := md2wechat.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return names
}

// configSearchPaths lists the user config directory candidates for hints.
func configSearchPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-md2wechat", "config.yaml")}
}
