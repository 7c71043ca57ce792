// Package gemini adapts the Google Gen AI SDK to the article studio's
// text and image generator interfaces.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/prompt"
)

// Default models and limits.
const (
	DefaultTextModel       = "gemini-2.0-flash"
	DefaultImageModel      = "imagen-3.0-generate-001"
	DefaultMaxOutputTokens = 8192
	defaultImageMIME       = "image/jpeg"
)

// Sentinel errors for generation calls.
var (
	ErrNoAPIKey      = errors.New("gemini: API key is empty")
	ErrEmptyResponse = errors.New("gemini: empty text response")
	ErrNoImage       = errors.New("no image data returned from API (possible safety block)")
)

// models is the subset of genai.Models used by Client.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Compile-time interface checks.
var (
	_ models                   = (*genai.Models)(nil)
	_ md2wechat.TextGenerator  = (*Client)(nil)
	_ md2wechat.ImageGenerator = (*Client)(nil)
)

// Client generates article text and images with Gemini and Imagen.
type Client struct {
	models          models
	textModel       string
	imageModel      string
	maxOutputTokens int32
	baseURL         string
}

// Option configures a Client.
type Option func(*Client)

// WithTextModel sets the text model name.
func WithTextModel(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.textModel = name
		}
	}
}

// WithImageModel sets the image model name.
func WithImageModel(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.imageModel = name
		}
	}
}

// WithMaxOutputTokens caps the text response length.
func WithMaxOutputTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxOutputTokens = int32(n) // #nosec G115 -- bounded by config validation
		}
	}
}

// WithBaseURL points the SDK at a reverse proxy instead of the public endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New creates a Client for the Gemini API backend.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}

	c := newClient(nil, opts...)
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions.BaseURL = c.baseURL
	}

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	c.models = gc.Models
	return c, nil
}

func newClient(m models, opts ...Option) *Client {
	c := &Client{
		models:          m,
		textModel:       DefaultTextModel,
		imageModel:      DefaultImageModel,
		maxOutputTokens: DefaultMaxOutputTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateText sends prompt to the text model and returns the raw reply.
func (c *Client) GenerateText(ctx context.Context, promptText string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.textModel, genai.Text(promptText), &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// GenerateImage renders one image and returns it as a base64 data URI.
// Covers use a 16:9 frame, body images 4:3.
func (c *Client) GenerateImage(ctx context.Context, req md2wechat.ImageRequest) (string, error) {
	resp, err := c.models.GenerateImages(ctx, c.imageModel, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    prompt.AspectRatio(req.Cover),
		OutputMIMEType: defaultImageMIME,
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		if generated != nil && generated.RAIFilteredReason != "" {
			return "", fmt.Errorf("%w: %s", ErrNoImage, generated.RAIFilteredReason)
		}
		return "", ErrNoImage
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = defaultImageMIME
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(generated.Image.ImageBytes), nil
}

// IsRateLimit reports whether err is a quota or rate-limit rejection.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := asAPIError(err); ok {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}
	return strings.Contains(err.Error(), "429")
}

// IsAuthError reports whether err is a rejected or missing API key.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoAPIKey) {
		return true
	}
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		return strings.Contains(apiErr.Message, "API key")
	}
	return false
}

// asAPIError unwraps a genai.APIError returned by value or by pointer.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}
