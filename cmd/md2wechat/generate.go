package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/fileutil"
	"github.com/alnah/go-md2wechat/internal/gemini"
	"github.com/alnah/go-md2wechat/internal/imagequeue"
)

// defaultGenerateTimeout bounds a generation run when no --timeout is given.
const defaultGenerateTimeout = 15 * time.Minute

// slugLength caps output file names in user-perceived characters.
const slugLength = 60

// runGenerate writes, illustrates and styles one article, then saves it.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	topic := strings.TrimSpace(strings.Join(positional, " "))
	if topic == "" {
		return fmt.Errorf("%w: generate needs a topic (md2wechat generate \"<topic>\")", ErrUsage)
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadCommandConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if err := mergeGenerateFlags(flags, cfg); err != nil {
		return err
	}
	env.apiKeyEnv = cfg.Gemini.APIKeyEnv

	// Validate before contacting the API
	req := md2wechat.Request{
		Topic:     topic,
		Style:     md2wechat.StyleKey(cfg.Article.Style),
		WordCount: cfg.Article.WordCount,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.common.timeout, envCfg.Timeout, defaultGenerateTimeout)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	gen, err := env.NewGenerator(ctx, cfg.Gemini, env.Getenv(cfg.Gemini.APIKeyEnv))
	if err != nil {
		return fmt.Errorf("connecting to Gemini: %w", err)
	}

	conv, err := md2wechat.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return err
	}

	status := newStatusPrinter(env, flags.common.quiet, flags.common.verbose)
	studio, err := md2wechat.NewStudio(gen, gen, studioOptions(cfg, conv, status)...)
	if err != nil {
		_ = conv.Close()
		return err
	}
	defer func() { _ = studio.Close() }()

	article, err := studio.Generate(ctx, req)
	if err != nil {
		return err
	}

	outDir := cfg.Output.DefaultDir
	paths, err := writeArticle(outDir, article)
	if err != nil {
		return err
	}
	for _, p := range paths {
		status.Created(p)
	}

	if cfg.Preview.Enabled {
		path, err := writeArticlePreview(ctx, conv, outDir, cfg.Preview.Date, article)
		if err != nil {
			return err
		}
		status.Created(path)
	}

	status.Verbose("%d characters, %d images in %s", article.CharCount, len(article.Images), article.Elapsed.Round(time.Millisecond))
	return nil
}

// mergeGenerateFlags merges CLI flags into config. CLI values override config values.
func mergeGenerateFlags(flags *generateFlags, cfg *config.Config) error {
	if flags.style != "" {
		cfg.Article.Style = flags.style
	}
	if flags.words != 0 {
		cfg.Article.WordCount = flags.words
	}
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	applyThemeFlags(flags.theme, cfg)
	return applyPreviewFlags(flags.preview, cfg)
}

// studioOptions builds the image queue and progress options from cfg.
func studioOptions(cfg *config.Config, conv *md2wechat.Converter, status *statusPrinter) []md2wechat.StudioOption {
	opts := []md2wechat.StudioOption{
		md2wechat.WithConverter(conv),
		md2wechat.WithImageSpacing(cfg.Images.SpacingDuration()),
		md2wechat.WithRetryable(gemini.IsRateLimit),
		md2wechat.WithProgress(status.Progress),
	}
	if n := cfg.Images.Attempts; n > 0 {
		opts = append(opts, md2wechat.WithImageAttempts(n))
	}
	if b := cfg.Images.BackoffDuration(); b > 0 {
		opts = append(opts, md2wechat.WithBackoff(imagequeue.LinearBackoff(b)))
	}
	return opts
}

// articlePaths holds the output files of one article.
type articlePaths struct {
	html, markdown, text, cover, pdf string
}

// pathsFor derives output file names from the topic slug.
func pathsFor(dir, topic string) articlePaths {
	base := filepath.Join(dir, fileutil.Slugify(topic, slugLength))
	return articlePaths{
		html:     base + ".html",
		markdown: base + ".md",
		text:     base + ".txt",
		cover:    base + "-cover.txt",
		pdf:      base + ".pdf",
	}
}

// writeArticle saves the markup, the markdown body, the plain text and
// the cover reference of a. Returns the written paths in order.
func writeArticle(dir string, a *md2wechat.Article) ([]string, error) {
	p := pathsFor(dir, a.Topic)
	files := []struct {
		path string
		data string
	}{
		{p.html, a.HTML},
		{p.markdown, a.Markdown},
		{p.text, a.PlainText},
		{p.cover, coverReference(a)},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := writeFile(f.path, []byte(f.data)); err != nil {
			return written, err
		}
		written = append(written, f.path)
	}
	return written, nil
}

// coverReference describes the cover for upload alongside the article.
func coverReference(a *md2wechat.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "title: %s\n", a.Topic)
	fmt.Fprintf(&b, "style: %s\n", a.Style)
	fmt.Fprintf(&b, "prompt: %s\n", a.CoverPrompt)
	fmt.Fprintf(&b, "url: %s\n", a.CoverURL)
	return b.String()
}

// writeArticlePreview renders the phone-width PDF of a and saves it.
func writeArticlePreview(ctx context.Context, conv *md2wechat.Converter, dir, date string, a *md2wechat.Article) (string, error) {
	res, err := conv.Convert(ctx, md2wechat.Input{
		Markdown: a.Markdown,
		Images:   a.Images,
		Preview:  true,
		Title:    a.Topic,
		Cover:    a.CoverURL,
		Date:     date,
	})
	if err != nil {
		return "", err
	}

	path := pathsFor(dir, a.Topic).pdf
	if err := writeFile(path, res.PDF); err != nil {
		return "", err
	}
	return path, nil
}
