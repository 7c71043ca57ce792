// Package pipeline implements the Markdown-to-WeChat-HTML rendering pipeline.
//
// Rendering is a pure function of (raw document, image registry, theme) and
// runs four ordered stages, each consuming the previous stage's string:
//
//  1. Escaping of &, < and > (EscapeText)
//  2. Inline tokens: image directives, headers, bold, blockquotes, highlight boxes
//  3. Table blocks: contiguous pipe-delimited runs with a separator row
//  4. Paragraph wrapping and the outer document container
//
// Every element carries inline style attributes taken from a Theme, so the
// output can be pasted into a rich-text editor without any stylesheet.
//
// The package also hosts the helpers that surround rendering: cleanup of
// generated text, cover/image directive extraction, plain-text extraction,
// and the preview page injection used for PDF previews.
//
// No stage returns an error. Unresolved images become visible placeholder
// blocks and malformed tables fall back to paragraphs.
package pipeline
