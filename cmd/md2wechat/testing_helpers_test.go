package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fake generator
// ---------------------------------------------------------------------------

var testNow = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// newTestEnv returns an Environment writing to buffers. vars backs Getenv;
// NO_COLOR is always set so assertions see plain text.
func newTestEnv(vars map[string]string, gen Generator) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	lookup := map[string]string{"NO_COLOR": "1"}
	for k, v := range vars {
		lookup[k] = v
	}

	env := &Environment{
		Now:    func() time.Time { return testNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return lookup[k] },
		NewGenerator: func(_ context.Context, _ config.GeminiConfig, apiKey string) (Generator, error) {
			if gen == nil {
				return newGeminiGenerator(context.Background(), config.GeminiConfig{}, apiKey)
			}
			return gen, nil
		},
	}
	return env, stdout, stderr
}

// fakeGenerator returns canned text and numbered image URLs.
type fakeGenerator struct {
	text     string
	textErr  error
	imageErr error

	mu       sync.Mutex
	prompt   string
	requests []md2wechat.ImageRequest
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompt = prompt
	return f.text, f.textErr
}

func (f *fakeGenerator) GenerateImage(_ context.Context, req md2wechat.ImageRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return fmt.Sprintf("https://img.test/%d.png", len(f.requests)), nil
}

const cannedArticle = "```markdown\n" +
	"((COVER_IMG: 雪夜里的火锅))\n" +
	"# 冬天吃肉\n\n" +
	"## 顺时而食\n\n" +
	"羊肉**温补**。\n\n" +
	"((IMG: 砂锅炖羊肉))\n\n" +
	"【核心提示：少油少盐】\n" +
	"```"

// writeFastConfig writes a config without image spacing or backoff
// and returns its path.
func writeFastConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fast.yaml")
	data := "images:\n  spacing: 0s\n  backoff: 0s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// writeTestFile writes content under dir and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// readTestFile returns the content of path or fails the test.
func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
