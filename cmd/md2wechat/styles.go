package main

import (
	"fmt"
	"strings"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/fileutil"
	"github.com/alnah/go-md2wechat/internal/prompt"
)

// personaPreviewLength caps persona descriptions in the listing.
const personaPreviewLength = 40

// runStyles lists persona keys and theme names.
// With --full, persona descriptions are printed in full.
func runStyles(args []string, env *Environment) error {
	full := false
	for _, a := range args {
		switch a {
		case "--full":
			full = true
		default:
			return fmt.Errorf("%w: styles takes no argument %q", ErrUsage, a)
		}
	}

	fmt.Fprintln(env.Stdout, "Styles:")
	for _, s := range md2wechat.Styles() {
		desc := s.Description()
		if !full {
			desc = preview(desc, personaPreviewLength)
		}
		marker := " "
		if s == md2wechat.DefaultStyle {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, " %s %s  %s\n", marker, s, desc)
	}

	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, "Themes:")
	for _, name := range md2wechat.ThemeNames() {
		marker := " "
		if name == md2wechat.DefaultThemeName {
			marker = "*"
		}
		fmt.Fprintf(env.Stdout, " %s %s\n", marker, name)
	}

	fmt.Fprintln(env.Stdout)
	fmt.Fprintf(env.Stdout, "Word count: %d-%d (default %d)\n", prompt.MinWordCount, prompt.MaxWordCount, prompt.DefaultWordCount)
	return nil
}

// preview shortens s to n user-perceived characters, adding an ellipsis.
func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if md2wechat.CharCount(s) <= n {
		return s
	}
	return fileutil.TruncateGraphemes(s, n) + "…"
}
