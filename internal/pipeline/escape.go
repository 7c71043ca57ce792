package pipeline

import "strings"

// textEscaper replaces & first so entities produced for < and > are not
// escaped a second time.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// textUnescaper is the exact inverse of textEscaper.
var textUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")

// attrEscaper is used for values placed inside double-quoted attributes.
// The pipe is encoded so generated blocks never split a table row.
var attrEscaper = strings.NewReplacer(`"`, "&quot;", "|", "&#124;")

// EscapeText replaces &, < and > with their named entities.
// No other character is altered.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// unescapeText recovers the original text of an escaped fragment.
// Image descriptions are looked up by their original text.
func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}

// escapeAttr prepares already text-escaped content for an attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
