package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Block placeholders use Unicode Private Use Area characters, like the
// highlight placeholders of the Markdown preprocessor. Generated image and
// highlight blocks are parked behind them so later substitutions in the
// same stage cannot match text inside the generated markup.
const (
	BlockStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	BlockEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// imageCaptionMarker prefixes every image caption.
const imageCaptionMarker = "▲ "

// Precompiled inline patterns, listed in application order.
var (
	// ((IMG: description))
	imageDirective = regexp.MustCompile(`\(\(IMG:\s*(.*?)\)\)`)

	// Line-anchored ATX headers, exactly one to three hashes
	heading1Line = regexp.MustCompile(`(?m)^# (.*)$`)
	heading2Line = regexp.MustCompile(`(?m)^## (.*)$`)
	heading3Line = regexp.MustCompile(`(?m)^### (.*)$`)

	// Strong emphasis, shortest span wins
	strongStars       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	strongUnderscores = regexp.MustCompile(`__(.*?)__`)

	// "> " after escaping
	blockquoteLine = regexp.MustCompile(`(?m)^&gt; (.*)$`)

	// 【highlight】
	highlightDirective = regexp.MustCompile(`【(.*?)】`)

	blockToken = regexp.MustCompile(`\x{E000}(\d+)\x{E001}`)
)

// InlineTransformer defines the contract for the inline token stage.
type InlineTransformer interface {
	TransformInline(content string, images map[string]string) string
}

// TokenTransformer applies the ordered inline substitutions.
// Input must already be escaped.
type TokenTransformer struct {
	theme Theme
}

// NewTokenTransformer creates a TokenTransformer styled by theme.
func NewTokenTransformer(theme Theme) *TokenTransformer {
	return &TokenTransformer{theme: theme}
}

// TransformInline runs, in order: image directives, headers, strong emphasis,
// blockquotes and highlight boxes. Each is a single global pass.
// Image and highlight blocks are moved onto their own line when they share
// a line with plain text, so the paragraph stage never wraps them.
func (t *TokenTransformer) TransformInline(content string, images map[string]string) string {
	blocks := &blockSet{}

	content = t.replaceImages(content, images, blocks)

	content = wrapMatches(heading1Line, content, `<h1 style="`+t.theme.Heading1+`">`, `</h1>`)
	content = wrapMatches(heading2Line, content, `<h2 style="`+t.theme.Heading2+`">`, `</h2>`)
	content = wrapMatches(heading3Line, content, `<section style="`+t.theme.Subheading+`">`, `</section>`)

	strongOpen := `<strong style="` + t.theme.StrongText + `">`
	content = wrapMatches(strongStars, content, strongOpen, `</strong>`)
	content = wrapMatches(strongUnderscores, content, strongOpen, `</strong>`)

	content = wrapMatches(blockquoteLine, content, `<section style="`+t.theme.Blockquote+`">`, `</section>`)

	content = highlightDirective.ReplaceAllStringFunc(content, func(m string) string {
		text := highlightDirective.FindStringSubmatch(m)[1]
		return blocks.add(`<section style="` + t.theme.HighlightBox + `">` + text + `</section>`)
	})

	content = blocks.isolate(content)
	return blocks.expand(content)
}

// replaceImages resolves every image directive against the registry.
// The lookup key is the trimmed, unescaped description.
func (t *TokenTransformer) replaceImages(content string, images map[string]string, blocks *blockSet) string {
	return imageDirective.ReplaceAllStringFunc(content, func(m string) string {
		desc := strings.TrimSpace(imageDirective.FindStringSubmatch(m)[1])
		url, ok := images[unescapeText(desc)]
		if !ok || url == "" {
			return blocks.add(t.imageErrorBlock(desc))
		}
		return blocks.add(t.imageBlock(desc, url))
	})
}

// imageBlock builds wrapper + image + caption on a single line.
func (t *TokenTransformer) imageBlock(desc, url string) string {
	safeDesc := escapeAttr(desc)
	return fmt.Sprintf(
		`<section style="%s"><img src="%s" style="%s" alt="%s" /><section style="%s">%s%s</section></section>`,
		t.theme.ImageWrapper,
		escapeAttr(EscapeText(url)),
		t.theme.Image,
		safeDesc,
		t.theme.ImageCaption,
		imageCaptionMarker,
		safeDesc,
	)
}

// imageErrorBlock builds the visible placeholder for an unresolved directive.
func (t *TokenTransformer) imageErrorBlock(desc string) string {
	return fmt.Sprintf(`<section style="%s">[图片生成失败: %s]</section>`, t.theme.ImageError, escapeAttr(desc))
}

// wrapMatches replaces every match of re with open + first group + close.
// Dollar signs in the markup are kept literal.
func wrapMatches(re *regexp.Regexp, content, open, close string) string {
	return re.ReplaceAllString(content, literalTemplate(open)+"${1}"+literalTemplate(close))
}

func literalTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// blockSet parks generated block markup behind placeholders for one call.
type blockSet struct {
	blocks []string
}

// add stores markup and returns its placeholder.
func (b *blockSet) add(markup string) string {
	b.blocks = append(b.blocks, markup)
	return BlockStartPlaceholder + strconv.Itoa(len(b.blocks)-1) + BlockEndPlaceholder
}

// isolate puts placeholders found in plain-text lines on lines of their own.
// Lines that already start with markup and table candidate lines (those
// containing a pipe) keep their placeholders inline.
func (b *blockSet) isolate(content string) string {
	if len(b.blocks) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(line, "|") || strings.HasPrefix(trimmed, "<") || !blockToken.MatchString(line) {
			out = append(out, line)
			continue
		}
		out = append(out, splitAroundTokens(line)...)
	}
	return strings.Join(out, "\n")
}

// splitAroundTokens breaks a line into text segments and placeholder
// segments, dropping segments that are blank.
func splitAroundTokens(line string) []string {
	var segments []string
	last := 0
	for _, loc := range blockToken.FindAllStringIndex(line, -1) {
		if text := strings.TrimSpace(line[last:loc[0]]); text != "" {
			segments = append(segments, text)
		}
		segments = append(segments, line[loc[0]:loc[1]])
		last = loc[1]
	}
	if text := strings.TrimSpace(line[last:]); text != "" {
		segments = append(segments, text)
	}
	return segments
}

// expand replaces placeholders with the markup they stand for.
// A block only ever contains placeholders created before it, so the
// recursion for nested blocks terminates.
func (b *blockSet) expand(content string) string {
	if len(b.blocks) == 0 {
		return content
	}
	return blockToken.ReplaceAllStringFunc(content, func(tok string) string {
		idx, err := strconv.Atoi(blockToken.FindStringSubmatch(tok)[1])
		if err != nil || idx < 0 || idx >= len(b.blocks) {
			return ""
		}
		return b.expand(b.blocks[idx])
	})
}
