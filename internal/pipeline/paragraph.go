package pipeline

import "strings"

// structuralPrefixes open the block elements produced by earlier stages.
// Escaping guarantees that no source text line can start with "<".
var structuralPrefixes = []string{"<section", "<h", "<div", "<table", "<tr", "<td"}

// ParagraphWrapper defines the contract for the final stage.
type ParagraphWrapper interface {
	WrapParagraphs(content string) string
}

// LineParagraphWrapper wraps plain lines in styled paragraphs and the whole
// document in the root container.
type LineParagraphWrapper struct {
	theme Theme
}

// NewLineParagraphWrapper creates a LineParagraphWrapper styled by theme.
func NewLineParagraphWrapper(theme Theme) *LineParagraphWrapper {
	return &LineParagraphWrapper{theme: theme}
}

// WrapParagraphs classifies each line: blank lines are dropped, structural
// lines pass through trimmed, anything else becomes a paragraph.
func (w *LineParagraphWrapper) WrapParagraphs(content string) string {
	var b strings.Builder
	b.WriteString(`<section style="` + w.theme.Root + `">`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case isStructural(trimmed):
			b.WriteString(trimmed)
		default:
			b.WriteString(`<p style="` + w.theme.Paragraph + `">` + trimmed + `</p>`)
		}
	}
	b.WriteString(`</section>`)
	return b.String()
}

// isStructural is a prefix check only; content is never inspected.
func isStructural(line string) bool {
	for _, prefix := range structuralPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
