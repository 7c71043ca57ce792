package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Reasoning traces some models emit before the answer
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

	// Code fence markers wrapped around the whole article
	markdownFence = regexp.MustCompile("```(?:markdown|md)?")

	// Reserved placeholder code points
	placeholderRunes = regexp.MustCompile(`[\x{E000}\x{E001}]`)
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// stripPlaceholders removes the code points reserved for block placeholders.
func stripPlaceholders(content string) string {
	return placeholderRunes.ReplaceAllString(content, "")
}

// CleanGeneratedText prepares model output for rendering: it drops
// <think>...</think> blocks and code fence markers, normalizes line endings,
// compresses blank lines and trims the result.
func CleanGeneratedText(content string) string {
	content = normalizeLineEndings(content)
	content = thinkBlock.ReplaceAllString(content, "")
	content = markdownFence.ReplaceAllString(content, "")
	content = compressBlankLines(content)
	return strings.TrimSpace(content)
}
