package md2wechat

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPreviewRender  = errors.New("preview page rendering failed")
	ErrInvalidDate    = errors.New("invalid publish date")

	// Request validation errors.
	ErrEmptyTopic       = errors.New("topic cannot be empty")
	ErrTopicTooLong     = errors.New("topic too long")
	ErrUnknownStyle     = errors.New("unknown article style")
	ErrInvalidWordCount = errors.New("invalid word count")

	// Generation errors.
	ErrTextGeneration  = errors.New("failed to generate article text")
	ErrNoTextGenerator = errors.New("text generator is required")
	ErrNoImageGen      = errors.New("image generator is required")

	// Theme errors.
	ErrInvalidTheme = errors.New("invalid theme")
	ErrUnknownRole  = errors.New("unknown theme role")

	// Asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// StageError reports which generation stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return "stage " + string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}
