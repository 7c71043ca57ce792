package main

import (
	"context"
	"io"
	"os"
	"time"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/gemini"
)

// Generator is the backend used by the generate command.
type Generator interface {
	md2wechat.TextGenerator
	md2wechat.ImageGenerator
}

// Compile-time interface implementation check.
var _ Generator = (*gemini.Client)(nil)

// GeneratorFactory builds a Generator from the gemini config section.
type GeneratorFactory func(ctx context.Context, cfg config.GeminiConfig, apiKey string) (Generator, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup and the generation backend.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	NewGenerator GeneratorFactory

	apiKeyEnv string // set by generate once the config is loaded, for hints
}

// DefaultEnv returns the production environment backed by the Gemini API.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		NewGenerator: newGeminiGenerator,
	}
}

// newGeminiGenerator creates a Gemini client configured from cfg.
func newGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, apiKey string) (Generator, error) {
	client, err := gemini.New(ctx, apiKey,
		gemini.WithTextModel(cfg.TextModel),
		gemini.WithImageModel(cfg.ImageModel),
		gemini.WithMaxOutputTokens(cfg.MaxOutputTokens),
		gemini.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
