package md2wechat

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/alnah/go-md2wechat/internal/imagequeue"
	"github.com/alnah/go-md2wechat/internal/pipeline"
	"github.com/alnah/go-md2wechat/internal/prompt"
)

// TextGenerator produces the raw article for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces one image and returns its URL or data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
}

// PlaceholderImageURL replaces images that could not be generated.
var PlaceholderImageURL = "https://placehold.co/800x600/f3f4f6/9ca3af?text=" +
	url.PathEscape("API 拒绝访问，请检查全局代理") + "&font=roboto"

// StudioOption configures a Studio.
type StudioOption func(*Studio)

// WithConverter renders articles with conv instead of a classic-theme converter.
func WithConverter(conv *Converter) StudioOption {
	return func(s *Studio) {
		s.converter = conv
	}
}

// WithImageSpacing sets the pause between consecutive image requests.
func WithImageSpacing(d time.Duration) StudioOption {
	return func(s *Studio) {
		s.queueOpts = append(s.queueOpts, imagequeue.WithSpacing(d))
	}
}

// WithImageAttempts sets how many times each image is tried.
func WithImageAttempts(n int) StudioOption {
	return func(s *Studio) {
		s.queueOpts = append(s.queueOpts, imagequeue.WithAttempts(n))
	}
}

// WithBackoff sets the wait after a rate-limited attempt.
func WithBackoff(fn func(attempt int) time.Duration) StudioOption {
	return func(s *Studio) {
		s.queueOpts = append(s.queueOpts, imagequeue.WithBackoff(fn))
	}
}

// WithSleep replaces the timer used between and around image requests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) StudioOption {
	return func(s *Studio) {
		s.queueOpts = append(s.queueOpts, imagequeue.WithSleep(fn))
	}
}

// WithRetryable sets the classifier for errors that wait before retrying.
func WithRetryable(fn func(error) bool) StudioOption {
	return func(s *Studio) {
		s.queueOpts = append(s.queueOpts, imagequeue.WithRetryable(fn))
	}
}

// WithProgress registers a callback for stage updates.
func WithProgress(fn func(Progress)) StudioOption {
	return func(s *Studio) {
		s.progress = fn
	}
}

// Studio generates a complete article: text, images, cover and markup.
type Studio struct {
	text      TextGenerator
	images    ImageGenerator
	converter *Converter
	queueOpts []imagequeue.Option
	progress  func(Progress)
}

// NewStudio creates a Studio. Without WithConverter, a converter using
// the classic theme is created.
func NewStudio(text TextGenerator, images ImageGenerator, opts ...StudioOption) (*Studio, error) {
	if text == nil {
		return nil, ErrNoTextGenerator
	}
	if images == nil {
		return nil, ErrNoImageGen
	}

	s := &Studio{text: text, images: images}
	for _, opt := range opts {
		opt(s)
	}

	if s.converter == nil {
		conv, err := NewConverter()
		if err != nil {
			return nil, err
		}
		s.converter = conv
	}
	return s, nil
}

// Close releases the converter.
func (s *Studio) Close() error {
	return s.converter.Close()
}

// Generate writes, illustrates and styles an article about req.Topic.
// Image failures never abort generation: a placeholder is used instead.
// Errors from generation stages are *StageError values.
func (s *Studio) Generate(ctx context.Context, req Request) (*Article, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.withDefaults()
	style := string(req.Style)

	s.report(Progress{Stage: StageWriting, Message: fmt.Sprintf("Creating deep content with %s persona...", req.Style)})
	raw, err := s.text.GenerateText(ctx, prompt.ArticlePrompt(req.Topic, style, req.WordCount))
	if err != nil {
		return nil, &StageError{Stage: StageWriting, Err: fmt.Errorf("%w: %w", ErrTextGeneration, err)}
	}
	raw = pipeline.CleanGeneratedText(raw)
	if raw == "" {
		return nil, &StageError{Stage: StageWriting, Err: fmt.Errorf("%w: empty response", ErrTextGeneration)}
	}

	coverPrompt, body := pipeline.ExtractCover(raw, prompt.CoverFallback(req.Topic))
	if body == "" {
		return nil, &StageError{Stage: StageWriting, Err: fmt.Errorf("%w: no article body", ErrTextGeneration)}
	}

	descs := pipeline.ImageDescriptions(body)
	s.report(Progress{
		Stage:   StageImagining,
		Message: fmt.Sprintf("Developing %d photorealistic images...", len(descs)),
		Total:   len(descs),
	})
	images, err := s.generateImages(ctx, descs, style, false)
	if err != nil {
		return nil, &StageError{Stage: StageImagining, Err: err}
	}

	s.report(Progress{Stage: StageCover, Message: "Shooting wide-format cinematic cover..."})
	covers, err := s.generateImages(ctx, []string{coverPrompt}, style, true)
	if err != nil {
		return nil, &StageError{Stage: StageCover, Err: err}
	}

	s.report(Progress{Stage: StageStyling, Message: "Applying WeChat Official Account styling..."})
	res, err := s.converter.Convert(ctx, Input{Markdown: body, Images: images})
	if err != nil {
		return nil, &StageError{Stage: StageStyling, Err: err}
	}

	article := &Article{
		Topic:       req.Topic,
		Style:       req.Style,
		WordCount:   req.WordCount,
		Markdown:    body,
		HTML:        res.HTML,
		PlainText:   res.PlainText,
		Images:      images,
		CoverPrompt: coverPrompt,
		CoverURL:    covers[coverPrompt],
		CharCount:   CharCount(res.PlainText),
		Elapsed:     time.Since(start),
	}

	s.report(Progress{Stage: StageComplete, Message: fmt.Sprintf("Article ready: %d characters, %d images", article.CharCount, len(images))})
	return article, nil
}

// generateImages runs descs through the sequential queue. Every
// description gets a value; failures get PlaceholderImageURL.
// Only context errors are returned.
func (s *Studio) generateImages(ctx context.Context, descs []string, style string, cover bool) (map[string]string, error) {
	job := func(ctx context.Context, desc string, _ int) (string, error) {
		return s.images.GenerateImage(ctx, ImageRequest{
			Prompt: prompt.ImagePrompt(desc, style, cover),
			Cover:  cover,
		})
	}

	opts := append([]imagequeue.Option(nil), s.queueOpts...)
	opts = append(opts, imagequeue.WithEvents(func(e imagequeue.Event) {
		s.reportImageEvent(e, cover)
	}))

	q, err := imagequeue.New(job, opts...)
	if err != nil {
		return nil, err
	}

	results, err := q.Run(ctx, descs)
	if err != nil {
		return nil, err
	}

	images := imagequeue.Values(results)
	for _, r := range results {
		if r.Err != nil {
			images[r.Key] = PlaceholderImageURL
		}
	}
	return images, nil
}

// reportImageEvent turns queue events into progress updates.
func (s *Studio) reportImageEvent(e imagequeue.Event, cover bool) {
	stage, current, total := StageImagining, e.Index, e.Total
	if cover {
		stage, current, total = StageCover, 0, 0
	}

	var msg string
	switch e.Kind {
	case imagequeue.JobStarted:
		if cover {
			return
		}
		msg = fmt.Sprintf("Developing image %d of %d...", e.Index, e.Total)
	case imagequeue.JobRetrying:
		msg = fmt.Sprintf("Image attempt %d failed (%v), retrying", e.Attempt, e.Err)
		if e.Delay > 0 {
			msg += " in " + e.Delay.String()
		}
	case imagequeue.JobFailed:
		msg = fmt.Sprintf("Image unavailable after %d attempts, using placeholder: %v", e.Attempt, e.Err)
	default:
		return
	}
	s.report(Progress{Stage: stage, Message: msg, Current: current, Total: total})
}

func (s *Studio) report(p Progress) {
	if s.progress != nil {
		s.progress(p)
	}
}

// IsStage reports whether err is a *StageError for stage.
func IsStage(err error, stage Stage) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == stage
}
