package main

import (
	"strings"
	"testing"

	md2wechat "github.com/alnah/go-md2wechat"
)

// ---------------------------------------------------------------------------
// TestRunStyles
// ---------------------------------------------------------------------------

func TestRunStyles(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil, nil)
	if err := runStyles(nil, env); err != nil {
		t.Fatalf("runStyles() error = %v", err)
	}

	out := stdout.String()
	for _, s := range md2wechat.Styles() {
		if !strings.Contains(out, string(s)) {
			t.Errorf("style %s not listed", s)
		}
	}
	for _, want := range []string{" * 中医科普风", " * classic", "   ink", "Word count: 1000-3000 (default 1750)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "…") {
		t.Error("descriptions not shortened without --full")
	}
}

func TestRunStyles_Full(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv(nil, nil)
	if err := runStyles([]string{"--full"}, env); err != nil {
		t.Fatalf("runStyles() error = %v", err)
	}
	if !strings.Contains(stdout.String(), md2wechat.StyleTutorial.Description()) {
		t.Error("full description not printed")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	if got := preview("  短句  ", 10); got != "短句" {
		t.Errorf("preview() = %q", got)
	}
	if got := preview("一二三四五", 3); got != "一二三…" {
		t.Errorf("preview() = %q", got)
	}
}
