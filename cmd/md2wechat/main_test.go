package main

// Notes:
// - runMain: we test exit codes and stderr for dispatch, usage errors and
//   a full generate run against a fake generator.
// - notifyContext is not exercised; sending signals to the test process
//   would interfere with other parallel tests.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: []string{"md2wechat"}, wantCode: ExitUsage, wantStderr: "Usage: md2wechat"},
		{name: "unknown command", args: []string{"md2wechat", "publish"}, wantCode: ExitUsage, wantStderr: `unknown command: "publish"`},
		{name: "version", args: []string{"md2wechat", "version"}, wantCode: ExitSuccess, wantStdout: "md2wechat dev"},
		{name: "help", args: []string{"md2wechat", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help generate", args: []string{"md2wechat", "help", "generate"}, wantCode: ExitSuccess, wantStdout: "--words"},
		{name: "help render", args: []string{"md2wechat", "help", "render"}, wantCode: ExitSuccess, wantStdout: "--images"},
		{name: "generate --help", args: []string{"md2wechat", "generate", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: md2wechat generate"},
		{name: "generate without topic", args: []string{"md2wechat", "generate"}, wantCode: ExitUsage, wantStderr: "needs a topic"},
		{name: "generate bad flag", args: []string{"md2wechat", "generate", "--nope", "x"}, wantCode: ExitUsage, wantStderr: "invalid usage"},
		{name: "generate unknown style", args: []string{"md2wechat", "generate", "-s", "诗歌风", "冬天"}, wantCode: ExitUsage, wantStderr: "available styles"},
		{name: "generate words out of range", args: []string{"md2wechat", "generate", "-n", "500", "冬天"}, wantCode: ExitUsage, wantStderr: "invalid word count"},
		{name: "generate bad timeout", args: []string{"md2wechat", "generate", "-t", "soon", "冬天"}, wantCode: ExitUsage, wantStderr: "invalid timeout"},
		{name: "generate bad date", args: []string{"md2wechat", "generate", "--date", "auto:[D", "冬天"}, wantCode: ExitUsage, wantStderr: "invalid publish date"},
		{name: "generate missing config", args: []string{"md2wechat", "generate", "-c", "./missing.yaml", "冬天"}, wantCode: ExitUsage, wantStderr: "config file not found"},
		{name: "render without input", args: []string{"md2wechat", "render"}, wantCode: ExitIO, wantStderr: "no input specified"},
		{name: "render missing file", args: []string{"md2wechat", "render", "missing.md"}, wantCode: ExitIO, wantStderr: "discovering files"},
		{name: "render too many workers", args: []string{"md2wechat", "render", "-w", "99", "a.md"}, wantCode: ExitUsage, wantStderr: "invalid worker count"},
		{name: "styles", args: []string{"md2wechat", "styles"}, wantCode: ExitSuccess, wantStdout: "Themes:"},
		{name: "styles with argument", args: []string{"md2wechat", "styles", "extra"}, wantCode: ExitUsage, wantStderr: "no argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil, &fakeGenerator{text: cannedArticle})
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_MissingAPIKey(t *testing.T) {
	t.Parallel()

	// nil generator selects the real Gemini factory, which rejects the empty key
	env, _, stderr := newTestEnv(nil, nil)
	code := runMain([]string{"md2wechat", "generate", "冬天吃肉"}, env)

	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "API key is empty") {
		t.Errorf("stderr = %q, want API key error", stderr.String())
	}
	if !strings.Contains(stderr.String(), "hint:") {
		t.Errorf("stderr = %q, want a hint", stderr.String())
	}
}

func TestRunMain_GenerateWritesArticle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFastConfig(t, dir)
	outDir := filepath.Join(dir, "out")
	gen := &fakeGenerator{text: cannedArticle}

	env, stdout, stderr := newTestEnv(nil, gen)
	code := runMain([]string{"md2wechat", "generate", "-c", cfgPath, "-o", outDir, "-s", "干货教程风", "冬天吃肉"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	html := readTestFile(t, filepath.Join(outDir, "冬天吃肉.html"))
	if !strings.Contains(html, "https://img.test/1.png") {
		t.Errorf("article markup missing body image: %s", html)
	}
	if strings.Contains(html, "COVER_IMG") {
		t.Error("cover directive leaked into markup")
	}

	md := readTestFile(t, filepath.Join(outDir, "冬天吃肉.md"))
	if !strings.HasPrefix(md, "# 冬天吃肉") {
		t.Errorf("markdown body = %q", md)
	}

	text := readTestFile(t, filepath.Join(outDir, "冬天吃肉.txt"))
	if !strings.Contains(text, "羊肉温补") {
		t.Errorf("plain text = %q", text)
	}

	cover := readTestFile(t, filepath.Join(outDir, "冬天吃肉-cover.txt"))
	for _, want := range []string{"prompt: 雪夜里的火锅", "url: https://img.test/2.png", "style: 干货教程风"} {
		if !strings.Contains(cover, want) {
			t.Errorf("cover reference missing %q:\n%s", want, cover)
		}
	}

	if _, err := os.Stat(filepath.Join(outDir, "冬天吃肉.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Error("preview written without --preview")
	}

	if got := strings.Count(stdout.String(), "Created"); got != 4 {
		t.Errorf("Created lines = %d, want 4\n%s", got, stdout.String())
	}
	for _, stage := range []string{"[writing]", "[imagining]", "[cover]", "[styling]", "[complete]"} {
		if !strings.Contains(stderr.String(), stage) {
			t.Errorf("progress missing %s:\n%s", stage, stderr.String())
		}
	}

	// Cover is requested last with the wide frame
	if n := len(gen.requests); n != 2 || !gen.requests[1].Cover || gen.requests[0].Cover {
		t.Errorf("image requests = %+v", gen.requests)
	}
	if !strings.Contains(gen.prompt, "极其严谨的健康教练") {
		t.Error("prompt does not use the selected persona")
	}
}

func TestRunMain_GenerateImageFailureUsesPlaceholder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gen := &fakeGenerator{text: cannedArticle, imageErr: errors.New("safety block")}

	env, _, stderr := newTestEnv(nil, gen)
	code := runMain([]string{"md2wechat", "generate", "-q", "-c", writeFastConfig(t, dir), "-o", dir, "冬天吃肉"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	html := readTestFile(t, filepath.Join(dir, "冬天吃肉.html"))
	if !strings.Contains(html, "placehold.co") {
		t.Error("failed image did not fall back to the placeholder")
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run wrote to stderr: %s", stderr.String())
	}
}

func TestRunMain_GenerateTextFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gen := &fakeGenerator{textErr: errors.New("upstream unavailable")}

	env, _, stderr := newTestEnv(nil, gen)
	code := runMain([]string{"md2wechat", "generate", "-c", writeFastConfig(t, dir), "-o", dir, "冬天吃肉"}, env)

	if code != ExitGeneration {
		t.Errorf("runMain() = %d, want %d", code, ExitGeneration)
	}
	if !strings.Contains(stderr.String(), "stage writing") {
		t.Errorf("stderr = %q, want the failed stage", stderr.String())
	}
}

func TestRunMain_ConfigFromEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gen := &fakeGenerator{text: cannedArticle}

	env, _, stderr := newTestEnv(map[string]string{
		"MD2WECHAT_CONFIG":     writeFastConfig(t, dir),
		"MD2WECHAT_OUTPUT_DIR": dir,
		"MD2WECHAT_STYLE":      "幽默吐槽风",
	}, gen)
	code := runMain([]string{"md2wechat", "gen", "冬天吃肉"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "冬天吃肉.html")); err != nil {
		t.Errorf("article not written to MD2WECHAT_OUTPUT_DIR: %v", err)
	}
	if !strings.Contains(readTestFile(t, filepath.Join(dir, "冬天吃肉-cover.txt")), "style: 幽默吐槽风") {
		t.Error("MD2WECHAT_STYLE not applied")
	}
}
