package pipeline

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// parseRendered loads rendered output for structural assertions.
func parseRendered(t *testing.T, out string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestRender - Escaping
// ---------------------------------------------------------------------------

func TestRender_EscapesSourceTextOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "ampersand and brackets",
			input:    "a & b <c>",
			contains: "a &amp; b &lt;c&gt;",
			excludes: "&amp;amp;",
		},
		{
			name:     "literal entity is shown literally",
			input:    "&amp;",
			contains: "&amp;amp;",
		},
		{
			name:     "script tag is text",
			input:    "<script>alert(1)</script>",
			contains: "&lt;script&gt;alert(1)&lt;/script&gt;",
			excludes: "<script>",
		},
	}

	r := NewRenderer(testTheme())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Render(tt.input, nil)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Render(%q) = %q, want to contain %q", tt.input, got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("Render(%q) = %q, must not contain %q", tt.input, got, tt.excludes)
			}
		})
	}
}

func TestRender_ScriptNeverBecomesElement(t *testing.T) {
	t.Parallel()

	out := NewRenderer(testTheme()).Render("<script>x</script>\n<img src=x onerror=alert(1)>", nil)
	doc := parseRendered(t, out)

	if n := doc.Find("script").Length(); n != 0 {
		t.Errorf("found %d script elements", n)
	}
	if n := doc.Find("img").Length(); n != 0 {
		t.Errorf("found %d img elements from source text", n)
	}
}

// ---------------------------------------------------------------------------
// TestRender - Document Structure
// ---------------------------------------------------------------------------

func TestRender_HeadingImageParagraphOrder(t *testing.T) {
	t.Parallel()

	raw := "# Title\n((IMG: a cat))\nHello"
	images := map[string]string{"a cat": "https://img.test/cat.png"}
	doc := parseRendered(t, NewRenderer(testTheme()).Render(raw, images))

	children := doc.Find("body > section").Children()
	if children.Length() != 3 {
		t.Fatalf("expected 3 blocks, got %d", children.Length())
	}

	wantNodes := []string{"h1", "section", "p"}
	children.Each(func(i int, s *goquery.Selection) {
		if got := goquery.NodeName(s); got != wantNodes[i] {
			t.Errorf("block %d = <%s>, want <%s>", i, got, wantNodes[i])
		}
	})

	if got := children.Eq(0).Text(); got != "Title" {
		t.Errorf("heading text = %q, want %q", got, "Title")
	}
	img := children.Eq(1).Find("img")
	if src, _ := img.Attr("src"); src != "https://img.test/cat.png" {
		t.Errorf("img src = %q", src)
	}
	if alt, _ := img.Attr("alt"); alt != "a cat" {
		t.Errorf("img alt = %q", alt)
	}
	if got := children.Eq(1).Find("section").Text(); got != "▲ a cat" {
		t.Errorf("caption = %q, want %q", got, "▲ a cat")
	}
	if got := children.Eq(2).Text(); got != "Hello" {
		t.Errorf("paragraph text = %q, want %q", got, "Hello")
	}
}

func TestRender_ImagesKeepDirectiveOrder(t *testing.T) {
	t.Parallel()

	raw := "((IMG: second))\ntext\n((IMG: first))\n((IMG: third))"
	images := map[string]string{
		"first":  "https://img.test/1.png",
		"second": "https://img.test/2.png",
		"third":  "https://img.test/3.png",
	}
	doc := parseRendered(t, NewRenderer(testTheme()).Render(raw, images))

	var srcs []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		srcs = append(srcs, src)
	})

	want := []string{"https://img.test/2.png", "https://img.test/1.png", "https://img.test/3.png"}
	if strings.Join(srcs, ",") != strings.Join(want, ",") {
		t.Errorf("img order = %v, want %v", srcs, want)
	}
}

func TestRender_MissingImageContinues(t *testing.T) {
	t.Parallel()

	raw := "((IMG: gone))\nafter"
	out := NewRenderer(testTheme()).Render(raw, map[string]string{})

	if !strings.Contains(out, "[图片生成失败: gone]") {
		t.Errorf("expected placeholder in %q", out)
	}
	if !strings.Contains(out, `<p style="p">after</p>`) {
		t.Errorf("rendering should continue after a missing image: %q", out)
	}
}

func TestRender_StrongSpans(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("**bold** plain **again**", nil))

	strong := doc.Find("p strong")
	if strong.Length() != 2 {
		t.Fatalf("expected 2 strong spans, got %d", strong.Length())
	}
	if strong.Eq(0).Text() != "bold" || strong.Eq(1).Text() != "again" {
		t.Errorf("strong texts = %q, %q", strong.Eq(0).Text(), strong.Eq(1).Text())
	}
	if got := doc.Find("p").Text(); got != "bold plain again" {
		t.Errorf("paragraph text = %q", got)
	}
}

func TestRender_HighlightNotInsideParagraph(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("【核心提示：多喝水】", nil))

	box := doc.Find(`section[style="hl"]`)
	if box.Length() != 1 {
		t.Fatalf("expected 1 highlight box, got %d", box.Length())
	}
	if box.Text() != "核心提示：多喝水" {
		t.Errorf("highlight text = %q", box.Text())
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("highlight should not be wrapped in a paragraph, found %d p", n)
	}
}

func TestRender_HighlightSplitsSurroundingText(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("前文【提示】后文", nil))

	if n := doc.Find("p section").Length(); n != 0 {
		t.Errorf("found %d sections nested in paragraphs", n)
	}
	if n := doc.Find("p").Length(); n != 2 {
		t.Errorf("expected 2 paragraphs around the box, got %d", n)
	}
}

func TestRender_Blockquote(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("> 引用一句话", nil))

	quote := doc.Find(`section[style="bq"]`)
	if quote.Length() != 1 {
		t.Fatalf("expected 1 blockquote, got %d", quote.Length())
	}
	if quote.Text() != "引用一句话" {
		t.Errorf("blockquote text = %q", quote.Text())
	}
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("|A|B|\n|---|---|\n|1|2|", nil))

	if n := doc.Find("table").Length(); n != 1 {
		t.Fatalf("expected 1 table, got %d", n)
	}
	rows := doc.Find("tr")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Length())
	}
	if got := rows.Eq(0).Find("td").Length(); got != 2 {
		t.Errorf("header cells = %d, want 2", got)
	}
	if style, _ := rows.Eq(0).Find("td").First().Attr("style"); style != "th" {
		t.Errorf("header cell style = %q", style)
	}
	if got := rows.Eq(1).Find("td").Eq(1).Text(); got != "2" {
		t.Errorf("body cell = %q, want %q", got, "2")
	}
	if n := doc.Find("p").Length(); n != 0 {
		t.Errorf("table should not produce paragraphs, found %d", n)
	}
}

func TestRender_SinglePipeRowIsParagraph(t *testing.T) {
	t.Parallel()

	doc := parseRendered(t, NewRenderer(testTheme()).Render("|A|B|", nil))

	if n := doc.Find("table").Length(); n != 0 {
		t.Errorf("expected no table, got %d", n)
	}
	if got := doc.Find("p").Text(); got != "|A|B|" {
		t.Errorf("paragraph text = %q", got)
	}
}

func TestRender_ImageInsideTableCell(t *testing.T) {
	t.Parallel()

	raw := "|图|说明|\n|---|---|\n|((IMG: cat))|猫|"
	images := map[string]string{"cat": "https://img.test/cat.png"}
	doc := parseRendered(t, NewRenderer(testTheme()).Render(raw, images))

	if n := doc.Find("td img").Length(); n != 1 {
		t.Errorf("expected image inside a cell, got %d", n)
	}
	if n := doc.Find("tr").Eq(1).Find("td").Length(); n != 2 {
		t.Errorf("body row cells = %d, want 2", n)
	}
}

func TestRender_LineEndings(t *testing.T) {
	t.Parallel()

	r := NewRenderer(testTheme())
	lf := r.Render("# T\nline\n", nil)

	for _, input := range []string{"# T\r\nline\r\n", "# T\rline\r"} {
		if got := r.Render(input, nil); got != lf {
			t.Errorf("Render(%q) = %q, want %q", input, got, lf)
		}
	}
}

func TestRender_ReservedCodePointsStripped(t *testing.T) {
	t.Parallel()

	raw := "before" + BlockStartPlaceholder + "0" + BlockEndPlaceholder + "after"
	got := NewRenderer(testTheme()).Render(raw, nil)

	want := `<section style="root"><p style="p">before0after</p></section>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRender_EmptyInput(t *testing.T) {
	t.Parallel()

	got := NewRenderer(testTheme()).Render("", nil)
	if got != `<section style="root"></section>` {
		t.Errorf("Render(\"\") = %q", got)
	}
}

func TestRender_DefaultThemeStyles(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	doc := parseRendered(t, NewRenderer(theme).Render("## 小标题\n正文", nil))

	if style, _ := doc.Find("h2").Attr("style"); style != theme.Heading2 {
		t.Errorf("h2 style = %q, want %q", style, theme.Heading2)
	}
	if style, _ := doc.Find("p").Attr("style"); style != theme.Paragraph {
		t.Errorf("p style = %q, want %q", style, theme.Paragraph)
	}
	if style, _ := doc.Find("body > section").Attr("style"); style != theme.Root {
		t.Errorf("root style = %q, want %q", style, theme.Root)
	}
}
