package md2wechat

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestStyleKey
// ---------------------------------------------------------------------------

func TestStyles(t *testing.T) {
	t.Parallel()

	styles := Styles()
	if len(styles) != 8 {
		t.Fatalf("Styles() returned %d keys, want 8", len(styles))
	}
	for _, s := range styles {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
		if s.Description() == "" {
			t.Errorf("%q has no description", s)
		}
	}
	if StyleKey("脱口秀").Valid() {
		t.Error("unknown key reported valid")
	}
	if StyleKey("脱口秀").Description() != "" {
		t.Error("unknown key should have no description")
	}
}

// ---------------------------------------------------------------------------
// TestRequest_Validate
// ---------------------------------------------------------------------------

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "defaults", req: Request{Topic: "冬季进补"}},
		{name: "explicit", req: Request{Topic: "冬季进补", Style: StyleHumor, WordCount: 3000}},
		{name: "lower bound", req: Request{Topic: "x", WordCount: MinWordCount}},
		{name: "empty topic", req: Request{Topic: "  "}, wantErr: ErrEmptyTopic},
		{name: "long topic", req: Request{Topic: strings.Repeat("长", MaxTopicLength+1)}, wantErr: ErrTopicTooLong},
		{name: "unknown style", req: Request{Topic: "x", Style: "赛博朋克风"}, wantErr: ErrUnknownStyle},
		{name: "too short", req: Request{Topic: "x", WordCount: 999}, wantErr: ErrInvalidWordCount},
		{name: "too long", req: Request{Topic: "x", WordCount: 3001}, wantErr: ErrInvalidWordCount},
		{name: "negative", req: Request{Topic: "x", WordCount: -5}, wantErr: ErrInvalidWordCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRequest_TopicLengthCountsGraphemes(t *testing.T) {
	t.Parallel()

	// Each flag is one grapheme made of two code points.
	topic := strings.Repeat("🇨🇳", MaxTopicLength)
	if err := (Request{Topic: topic}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRequest_WithDefaults(t *testing.T) {
	t.Parallel()

	got := Request{Topic: "  睡眠  "}.withDefaults()
	if got.Topic != "睡眠" || got.Style != DefaultStyle || got.WordCount != DefaultWordCount {
		t.Errorf("withDefaults() = %+v", got)
	}
}

func TestCharCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"冬天吃肉", 4},
		{"👍🏽", 1},
		{"é", 1},
	}
	for _, tt := range tests {
		if got := CharCount(tt.in); got != tt.want {
			t.Errorf("CharCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStageError(t *testing.T) {
	t.Parallel()

	err := &StageError{Stage: StageWriting, Err: ErrTextGeneration}
	if !errors.Is(err, ErrTextGeneration) {
		t.Error("StageError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "writing") {
		t.Errorf("Error() = %q, want stage name", err.Error())
	}
	if !IsStage(err, StageWriting) || IsStage(err, StageCover) {
		t.Error("IsStage mismatch")
	}
}
