package pipeline

// Renderer runs the four rendering stages in order.
// It holds no state between calls and is safe for concurrent use.
type Renderer struct {
	inline     InlineTransformer
	tables     TableTransformer
	paragraphs ParagraphWrapper
}

// Compile-time interface implementation checks.
var (
	_ InlineTransformer = (*TokenTransformer)(nil)
	_ TableTransformer  = (*PipeTableTransformer)(nil)
	_ ParagraphWrapper  = (*LineParagraphWrapper)(nil)
)

// NewRenderer creates a Renderer whose stages all read the same theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{
		inline:     NewTokenTransformer(theme),
		tables:     NewPipeTableTransformer(theme),
		paragraphs: NewLineParagraphWrapper(theme),
	}
}

// Render converts a raw document into inline-styled HTML.
// images maps trimmed directive descriptions to image URLs or data URIs;
// it is only read. Render never fails: unresolved images and malformed
// tables degrade to placeholders and paragraphs.
func (r *Renderer) Render(raw string, images map[string]string) string {
	content := normalizeLineEndings(raw)
	content = stripPlaceholders(content)
	content = EscapeText(content)
	content = r.inline.TransformInline(content, images)
	content = r.tables.TransformTables(content)
	return r.paragraphs.WrapParagraphs(content)
}
