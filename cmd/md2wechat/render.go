package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/pipeline"
	"github.com/alnah/go-md2wechat/internal/yamlutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// defaultRenderTimeout bounds a render run when no --timeout is given.
const defaultRenderTimeout = 10 * time.Minute

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (*md2wechat.Converter, error)
	Release(*md2wechat.Converter)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*md2wechat.ConverterPool)(nil)

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string // .html; the preview uses the same base name
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string
	Missing    []string
	Err        error
	Duration   time.Duration
}

// renderParams groups parameters shared across a batch.
type renderParams struct {
	images  map[string]string
	preview bool
	date    string
}

// runRender renders existing markdown files to article markup.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: render needs a markdown file or directory", ErrNoInput)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadCommandConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if err := mergeRenderFlags(flags, cfg); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.common.timeout, envCfg.Timeout, defaultRenderTimeout)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	images, err := loadImageMap(flags.images)
	if err != nil {
		return err
	}

	files, err := discoverFiles(positional[0], flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, positional[0])
	}

	// Fail fast on theme and asset errors before starting workers
	probe, err := md2wechat.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return err
	}
	_ = probe.Close()

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	pool := md2wechat.NewConverterPool(md2wechat.ResolvePoolSize(workers), converterOptions(cfg)...)
	defer func() { _ = pool.Close() }()

	status := newStatusPrinter(env, flags.common.quiet, flags.common.verbose)
	status.Verbose("Pool size: %d", pool.Size())

	params := &renderParams{
		images:  images,
		preview: cfg.Preview.Enabled,
		date:    cfg.Preview.Date,
	}
	results := renderBatch(ctx, pool, files, params)

	if failed := printResults(results, status); failed > 0 {
		return fmt.Errorf("%d render(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) error {
	if flags.output == "" {
		flags.output = cfg.Output.DefaultDir
	}
	applyThemeFlags(flags.theme, cfg)
	return applyPreviewFlags(flags.preview, cfg)
}

// loadImageMap reads a YAML mapping of image descriptions to sources.
// Relative file paths are inlined as data URIs, resolved against the
// directory of the map file.
func loadImageMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	var images map[string]string
	if err := yamlutil.ReadFileStrict(path, &images); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadImages, path, err)
	}

	resolved, err := pipeline.ResolveLocalImages(images, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadImages, path, err)
	}
	return resolved, nil
}

// discoverFiles finds all markdown files to render.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToRender{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a markdown file.
// Directory inputs keep their layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// isMarkdownFile reports whether path has a markdown extension.
func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2wechat.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2wechat.MaxPoolSize)
	}
	return nil
}

// pdfOutputPath returns the preview path corresponding to an HTML path.
func pdfOutputPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, ".html") + ".pdf"
}

// renderBatch processes files concurrently using the converter pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, conv *md2wechat.Converter, f FileToRender, params *renderParams) (result RenderResult) {
	start := time.Now()
	result = RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		return result
	}

	title := strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
	res, err := conv.Convert(ctx, md2wechat.Input{
		Markdown: string(content),
		Images:   params.images,
		Preview:  params.preview,
		Title:    title,
		Date:     params.date,
	})
	if err != nil {
		result.Err = err
		return result
	}
	result.Missing = res.Missing

	if err := writeFile(f.OutputPath, []byte(res.HTML)); err != nil {
		result.Err = err
		return result
	}

	if params.preview {
		result.PDFPath = pdfOutputPath(f.OutputPath)
		if err := writeFile(result.PDFPath, res.PDF); err != nil {
			result.Err = err
		}
	}
	return result
}

// printResults reports each result and returns the number of failures.
func printResults(results []RenderResult, status *statusPrinter) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(status.w, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		succeeded++

		if len(r.Missing) > 0 {
			status.Warn("%s: no image for %s", r.InputPath, strings.Join(r.Missing, ", "))
		}
		status.Created(r.OutputPath)
		if r.PDFPath != "" {
			status.Created(r.PDFPath)
		}
		status.Verbose("%s rendered in %v", r.InputPath, r.Duration.Round(time.Millisecond))
	}

	if !status.quiet && len(results) > 1 {
		fmt.Fprintf(status.out, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}

// firstError returns the first failure in results.
func firstError(results []RenderResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
