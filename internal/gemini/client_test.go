package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"

	md2wechat "github.com/alnah/go-md2wechat"
)

// fakeModels records calls and returns canned responses.
type fakeModels struct {
	textResp  *genai.GenerateContentResponse
	imageResp *genai.GenerateImagesResponse
	err       error

	gotModel       string
	gotPrompt      string
	gotTextConfig  *genai.GenerateContentConfig
	gotImageConfig *genai.GenerateImagesConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	f.gotTextConfig = config
	return f.textResp, f.err
}

func (f *fakeModels) GenerateImages(_ context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	f.gotModel = model
	f.gotPrompt = prompt
	f.gotImageConfig = config
	return f.imageResp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// ---------------------------------------------------------------------------
// TestNew
// ---------------------------------------------------------------------------

func TestNew_EmptyKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   "} {
		if _, err := New(context.Background(), key); !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("New(%q) error = %v, want ErrNoAPIKey", key, err)
		}
	}
}

func TestNewClient_Options(t *testing.T) {
	t.Parallel()

	c := newClient(&fakeModels{},
		WithTextModel("text-x"),
		WithImageModel("image-x"),
		WithMaxOutputTokens(1024),
		WithTextModel(""),
		WithMaxOutputTokens(0),
	)
	if c.textModel != "text-x" || c.imageModel != "image-x" || c.maxOutputTokens != 1024 {
		t.Errorf("client = %+v", c)
	}

	d := newClient(&fakeModels{})
	if d.textModel != DefaultTextModel || d.imageModel != DefaultImageModel || d.maxOutputTokens != DefaultMaxOutputTokens {
		t.Errorf("defaults = %+v", d)
	}
}

// ---------------------------------------------------------------------------
// TestGenerateText
// ---------------------------------------------------------------------------

func TestGenerateText(t *testing.T) {
	t.Parallel()

	fake := &fakeModels{textResp: textResponse("# 标题\n\n正文")}
	c := newClient(fake, WithTextModel("gemini-test"), WithMaxOutputTokens(512))

	got, err := c.GenerateText(context.Background(), "写一篇文章")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if got != "# 标题\n\n正文" {
		t.Errorf("GenerateText() = %q", got)
	}
	if fake.gotModel != "gemini-test" || fake.gotPrompt != "写一篇文章" {
		t.Errorf("request model=%q prompt=%q", fake.gotModel, fake.gotPrompt)
	}
	if fake.gotTextConfig == nil || fake.gotTextConfig.MaxOutputTokens != 512 {
		t.Errorf("config = %+v", fake.gotTextConfig)
	}
}

func TestGenerateText_Errors(t *testing.T) {
	t.Parallel()

	upstream := errors.New("upstream unavailable")
	tests := []struct {
		name    string
		fake    *fakeModels
		wantErr error
	}{
		{name: "upstream error", fake: &fakeModels{err: upstream}, wantErr: upstream},
		{name: "blank text", fake: &fakeModels{textResp: textResponse("  \n")}, wantErr: ErrEmptyResponse},
		{name: "no candidates", fake: &fakeModels{textResp: &genai.GenerateContentResponse{}}, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newClient(tt.fake).GenerateText(context.Background(), "p")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGenerateImage
// ---------------------------------------------------------------------------

func TestGenerateImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cover     bool
		mime      string
		wantRatio string
		wantURI   string
	}{
		{name: "cover", cover: true, wantRatio: "16:9", wantURI: "data:image/jpeg;base64,AQID"},
		{name: "body", cover: false, wantRatio: "4:3", wantURI: "data:image/jpeg;base64,AQID"},
		{name: "reported mime", mime: "image/png", wantRatio: "4:3", wantURI: "data:image/png;base64,AQID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeModels{imageResp: &genai.GenerateImagesResponse{
				GeneratedImages: []*genai.GeneratedImage{{
					Image: &genai.Image{ImageBytes: []byte{1, 2, 3}, MIMEType: tt.mime},
				}},
			}}
			c := newClient(fake, WithImageModel("imagen-test"))

			got, err := c.GenerateImage(context.Background(), md2wechat.ImageRequest{Prompt: "tea room", Cover: tt.cover})
			if err != nil {
				t.Fatalf("GenerateImage() error = %v", err)
			}
			if got != tt.wantURI {
				t.Errorf("GenerateImage() = %q, want %q", got, tt.wantURI)
			}
			if fake.gotModel != "imagen-test" || fake.gotPrompt != "tea room" {
				t.Errorf("request model=%q prompt=%q", fake.gotModel, fake.gotPrompt)
			}
			cfg := fake.gotImageConfig
			if cfg.AspectRatio != tt.wantRatio || cfg.NumberOfImages != 1 || cfg.OutputMIMEType != "image/jpeg" {
				t.Errorf("config = %+v", cfg)
			}
		})
	}
}

func TestGenerateImage_NoImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		resp        *genai.GenerateImagesResponse
		wantContain string
	}{
		{name: "nil response", resp: nil},
		{name: "no images", resp: &genai.GenerateImagesResponse{}},
		{name: "empty bytes", resp: &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{{Image: &genai.Image{}}},
		}},
		{name: "filtered", resp: &genai.GenerateImagesResponse{
			GeneratedImages: []*genai.GeneratedImage{{RAIFilteredReason: "unsafe content"}},
		}, wantContain: "unsafe content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newClient(&fakeModels{imageResp: tt.resp}).
				GenerateImage(context.Background(), md2wechat.ImageRequest{Prompt: "x"})
			if !errors.Is(err, ErrNoImage) {
				t.Fatalf("expected ErrNoImage, got %v", err)
			}
			if tt.wantContain != "" && !strings.Contains(err.Error(), tt.wantContain) {
				t.Errorf("error %q should contain %q", err, tt.wantContain)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsRateLimit
// ---------------------------------------------------------------------------

func TestIsRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "status code", err: genai.APIError{Code: 429}, want: true},
		{name: "pointer", err: &genai.APIError{Code: 429}, want: true},
		{name: "wrapped", err: fmt.Errorf("image: %w", genai.APIError{Code: 429}), want: true},
		{name: "resource exhausted", err: genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, want: true},
		{name: "message", err: errors.New("googleapi: Error 429: quota"), want: true},
		{name: "server error", err: genai.APIError{Code: 500, Message: "internal"}, want: false},
		{name: "plain", err: ErrNoImage, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsRateLimit(tt.err); got != tt.want {
				t.Errorf("IsRateLimit(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "missing key", err: ErrNoAPIKey, want: true},
		{name: "forbidden", err: genai.APIError{Code: 403}, want: true},
		{name: "invalid key", err: genai.APIError{Code: 400, Message: "API key not valid"}, want: true},
		{name: "bad request", err: genai.APIError{Code: 400, Message: "bad prompt"}, want: false},
		{name: "rate limit", err: genai.APIError{Code: 429}, want: false},
		{name: "other", err: errors.New("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
