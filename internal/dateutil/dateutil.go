// Package dateutil formats publish dates from user-friendly patterns.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
// It matches the date line under a WeChat article title.
const DefaultDateFormat = "YYYY年M月D日"

// dateTokens lists the pattern tokens, longest first for greedy matching.
// Tokens are case-sensitive: MM is the month, mm the minute.
var dateTokens = []struct {
	token  string
	render func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"HH", func(t time.Time) string { return fmt.Sprintf("%02d", t.Hour()) }},
	{"mm", func(t time.Time) string { return fmt.Sprintf("%02d", t.Minute()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"wechat": DefaultDateFormat,
	"full":   "YYYY年M月D日 HH:mm",
	"short":  "M月D日",
	"iso":    "YYYY-MM-DD",
}

// Format renders t with a pattern of tokens YYYY, YY, MM, M, DD, D, HH, mm.
// Text in brackets is copied literally: "[第]D[天]" keeps 第 and 天.
// Any other character is preserved as is.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has
// an unclosed bracket.
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d bytes", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at byte %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		matched := false
		for _, tok := range dateTokens {
			if strings.HasPrefix(rest, tok.token) {
				b.WriteString(tok.render(t))
				rest = rest[len(tok.token):]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(rest[0])
			rest = rest[1:]
		}
	}

	return b.String(), nil
}

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" → t in DefaultDateFormat
//   - "auto:FORMAT" → t in a custom pattern (e.g., "auto:M月D日")
//   - "auto:preset" → t in a named preset (wechat, full, short, iso)
//   - any other value → returned unchanged
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	if lower == "auto" {
		return Format(t, DefaultDateFormat)
	}

	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	// Keep the original case: tokens are case-sensitive
	pattern := value[len("auto:"):]
	if pattern == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := DatePresets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}

	return Format(t, pattern)
}
