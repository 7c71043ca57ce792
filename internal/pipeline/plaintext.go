package pipeline

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlTagPattern matches HTML tags; used when the fragment cannot be parsed.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText renders the text content of an HTML fragment, one block per
// line and table cells separated by tabs. Entities are decoded.
// It is the text/plain companion of a rendered article.
func PlainText(htmlContent string) string {
	root, err := parseFragment(htmlContent)
	if err != nil {
		return tidyLines(html.UnescapeString(htmlTagPattern.ReplaceAllString(htmlContent, "\n")))
	}

	var b strings.Builder
	writeText(&b, root)
	return tidyLines(b.String())
}

// parseFragment parses content with a body context and wraps the resulting
// nodes in a container for uniform traversal.
func parseFragment(content string) (*xhtml.Node, error) {
	context := &xhtml.Node{
		Type:     xhtml.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := xhtml.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &xhtml.Node{Type: xhtml.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// writeText traverses the tree depth-first, writing text nodes and
// separators for block and cell boundaries.
func writeText(b *strings.Builder, n *xhtml.Node) {
	if n.Type == xhtml.TextNode {
		b.WriteString(n.Data)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type != xhtml.ElementNode {
		return
	}
	switch n.DataAtom {
	case atom.Td, atom.Th:
		b.WriteByte('\t')
	case atom.Section, atom.P, atom.H1, atom.H2, atom.H3, atom.Div, atom.Tr, atom.Table, atom.Br:
		b.WriteByte('\n')
	}
}

// tidyLines trims every line and drops the empty ones.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
