package md2wechat

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/alnah/go-md2wechat/internal/prompt"
)

// StyleKey names an article persona.
type StyleKey string

// Persona keys.
const (
	StyleTCM        StyleKey = prompt.StyleTCM
	StyleAuthority  StyleKey = prompt.StyleAuthority
	StyleEmotional  StyleKey = prompt.StyleEmotional
	StyleTutorial   StyleKey = prompt.StyleTutorial
	StyleLifestyle  StyleKey = prompt.StyleLifestyle
	StyleHumor      StyleKey = prompt.StyleHumor
	StyleBusiness   StyleKey = prompt.StyleBusiness
	StyleMotivation StyleKey = prompt.StyleMotivation
)

// DefaultStyle is used when a Request leaves Style empty.
const DefaultStyle = StyleTCM

// Word count bounds.
const (
	MinWordCount     = prompt.MinWordCount
	MaxWordCount     = prompt.MaxWordCount
	DefaultWordCount = prompt.DefaultWordCount
)

// MaxTopicLength caps the topic in user-perceived characters.
const MaxTopicLength = 200

// Styles returns every persona key in display order.
func Styles() []StyleKey {
	names := prompt.Styles()
	keys := make([]StyleKey, len(names))
	for i, n := range names {
		keys[i] = StyleKey(n)
	}
	return keys
}

// Valid reports whether s is a known persona.
func (s StyleKey) Valid() bool {
	return prompt.IsKnownStyle(string(s))
}

// Description returns the persona text sent to the model.
func (s StyleKey) Description() string {
	desc, _ := prompt.Persona(string(s))
	return desc
}

// Input contains the document to render and per-call options.
type Input struct {
	Markdown string            // Required: document body
	Images   map[string]string // Description -> URL or data URI
	Theme    *Theme            // Optional: overrides the converter theme for this call

	// Preview options. Ignored unless Preview is true.
	Preview bool
	Title   string // Page title above the article
	Cover   string // Cover image URL or data URI
	Date    string // "auto", "auto:FORMAT" or literal; empty = no date line
}

// ConvertResult contains the outputs of a conversion.
type ConvertResult struct {
	HTML      string   // Inline-styled article markup
	PlainText string   // Text-only rendering for plain-text clipboards
	PDF       []byte   // Phone-width preview; nil unless Input.Preview
	Missing   []string // Image descriptions the registry could not resolve
}

// ImageRequest asks an ImageGenerator for one picture.
type ImageRequest struct {
	Prompt string // Fully expanded image prompt
	Cover  bool   // Wide cover frame instead of a body illustration
}

// Request describes an article to generate.
type Request struct {
	Topic     string
	Style     StyleKey // Empty = DefaultStyle
	WordCount int      // 0 = DefaultWordCount
}

// withDefaults returns a copy of r with empty fields filled in.
func (r Request) withDefaults() Request {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	if r.WordCount == 0 {
		r.WordCount = DefaultWordCount
	}
	return r
}

// Validate checks that a request can be sent to the generators.
// Empty Style and zero WordCount are valid and take their defaults.
func (r Request) Validate() error {
	r = r.withDefaults()
	if r.Topic == "" {
		return ErrEmptyTopic
	}
	if n := uniseg.GraphemeClusterCount(r.Topic); n > MaxTopicLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrTopicTooLong, n, MaxTopicLength)
	}
	if !r.Style.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, r.Style)
	}
	if r.WordCount < MinWordCount || r.WordCount > MaxWordCount {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidWordCount, r.WordCount, MinWordCount, MaxWordCount)
	}
	return nil
}

// Article is a generated, rendered article.
type Article struct {
	Topic     string
	Style     StyleKey
	WordCount int // requested length

	Markdown  string            // body without the cover directive
	HTML      string            // rendered body
	PlainText string            // text-only body
	Images    map[string]string // description -> URL, data URI or placeholder

	CoverPrompt string // cover description used for generation
	CoverURL    string

	CharCount int           // user-perceived characters in PlainText
	Elapsed   time.Duration // wall time of Generate
}

// Stage identifies a step of article generation.
type Stage string

// Generation stages, in order.
const (
	StageWriting   Stage = "writing"
	StageImagining Stage = "imagining"
	StageCover     Stage = "cover"
	StageStyling   Stage = "styling"
	StageComplete  Stage = "complete"
)

// Progress reports a generation step. Current and Total count images
// during StageImagining and are zero otherwise.
type Progress struct {
	Stage   Stage
	Message string
	Current int
	Total   int
}

// CharCount returns the number of user-perceived characters in s.
func CharCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
