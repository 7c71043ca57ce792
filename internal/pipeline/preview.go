package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// ErrPreviewRender indicates the preview template failed to execute.
var ErrPreviewRender = errors.New("preview template rendering failed")

// PreviewData holds what the preview page shows around the article.
type PreviewData struct {
	Title    string
	Date     string // publish date line under the title; empty = none
	CoverURL string // URL or data URI; empty = no cover
	Article  string // rendered article HTML, inserted verbatim
}

// previewView is the value handed to the template. Article is marked safe
// because the renderer already escaped all source text.
type previewView struct {
	Title    string
	Date     string
	CoverURL template.URL
	Article  template.HTML
}

// PreviewInjector defines the contract for building preview pages.
type PreviewInjector interface {
	BuildPreview(ctx context.Context, data *PreviewData) (string, error)
}

// PreviewInjection renders a standalone HTML page that frames an article
// the way the publishing platform's phone view does.
type PreviewInjection struct {
	tmpl *template.Template
}

var _ PreviewInjector = (*PreviewInjection)(nil)

// NewPreviewInjection creates a PreviewInjection from template content.
// Returns error if the template cannot be parsed.
func NewPreviewInjection(tmplContent string) (*PreviewInjection, error) {
	tmpl, err := template.New("preview").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing preview template: %w", err)
	}
	return &PreviewInjection{tmpl: tmpl}, nil
}

// BuildPreview renders the preview page. A nil data renders nothing.
func (p *PreviewInjection) BuildPreview(ctx context.Context, data *PreviewData) (string, error) {
	if data == nil {
		return "", nil
	}

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	view := previewView{
		Title:    data.Title,
		Date:     data.Date,
		CoverURL: template.URL(data.CoverURL), // #nosec G203 -- generator output, http(s) or data:image
		Article:  template.HTML(data.Article), // #nosec G203 -- escaped by Renderer
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}
	return buf.String(), nil
}
