package md2wechat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2wechat/internal/assets"
	"github.com/alnah/go-md2wechat/internal/dateutil"
	"github.com/alnah/go-md2wechat/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.PreviewInjector = (*pipeline.PreviewInjection)(nil)
	_ AssetLoader              = (*assetLoaderAdapter)(nil)
)

// defaultTimeout bounds preview page loading when ctx has no deadline.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds option values resolved by NewConverter.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
	themeName string
	theme     *Theme
	overrides map[string]string
}

// WithTimeout sets the preview page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2wechat: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme uses t instead of a named theme.
func WithTheme(t Theme) Option {
	return func(c *Converter) {
		c.cfg.theme = &t
	}
}

// WithThemeName selects a built-in theme, or a custom one under the asset path.
func WithThemeName(name string) Option {
	return func(c *Converter) {
		c.cfg.themeName = name
	}
}

// WithThemeOverrides replaces single roles of the selected theme.
func WithThemeOverrides(overrides map[string]string) Option {
	return func(c *Converter) {
		c.cfg.overrides = overrides
	}
}

// WithAssetPath loads themes and templates from dir, falling back to the
// embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom loader for themes and templates.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// Converter renders generated documents into inline-styled article markup
// and, on request, a PDF preview.
// Create with NewConverter, use Convert, and Close when done.
type Converter struct {
	cfg             converterConfig
	assetLoader     AssetLoader
	theme           Theme
	renderer        *pipeline.Renderer
	previewInjector pipeline.PreviewInjector
	pdfConverter    pdfConverter
	now             func() time.Time
}

// NewConverter creates a Converter. The theme is resolved once here:
// WithTheme, else WithThemeName, else the classic theme, then overrides.
// Returns error if assets cannot be loaded or the theme is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if err := c.resolveTheme(); err != nil {
		return nil, err
	}
	c.renderer = pipeline.NewRenderer(c.theme)

	if c.previewInjector == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.PreviewTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading preview template: %w", err)
		}
		c.previewInjector, err = pipeline.NewPreviewInjection(tmpl)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPreviewRender, err)
		}
	}

	// Browser launches lazily on the first preview
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// resolveTheme picks the converter theme and applies overrides.
func (c *Converter) resolveTheme() error {
	theme := DefaultTheme()
	switch {
	case c.cfg.theme != nil:
		theme = *c.cfg.theme
	case c.cfg.themeName != "":
		t, err := loadTheme(c.assetLoader, c.cfg.themeName)
		if err != nil {
			return err
		}
		theme = t
	}

	theme, err := ApplyThemeOverrides(theme, c.cfg.overrides)
	if err != nil {
		return err
	}
	if err := ValidateTheme(theme); err != nil {
		return err
	}
	c.theme = theme
	return nil
}

// Theme returns the resolved converter theme.
func (c *Converter) Theme() Theme {
	return c.theme
}

// Convert renders input and returns the article markup, its plain text,
// and a PDF preview when input.Preview is set.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	renderer := c.renderer
	if input.Theme != nil {
		theme := c.theme.Merge(*input.Theme)
		if err := ValidateTheme(theme); err != nil {
			return nil, err
		}
		renderer = pipeline.NewRenderer(theme)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	articleHTML := renderer.Render(input.Markdown, input.Images)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:      articleHTML,
		PlainText: pipeline.PlainText(articleHTML),
		Missing:   pipeline.MissingImages(input.Markdown, input.Images),
	}

	if !input.Preview {
		return res, nil
	}

	date, err := dateutil.ResolveDate(input.Date, c.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	page, err := c.previewInjector.BuildPreview(ctx, &pipeline.PreviewData{
		Title:    input.Title,
		Date:     date,
		CoverURL: input.Cover,
		Article:  articleHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreviewRender, err)
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("converting preview to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
