package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	timeout string
	quiet   bool
	verbose bool
}

// themeFlags holds theme selection flags.
type themeFlags struct {
	name      string // built-in or custom theme name
	assetPath string // directory with custom themes and templates
}

// previewFlags holds PDF preview flags.
type previewFlags struct {
	enabled bool
	date    string // "auto", "auto:FORMAT" or literal
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common  commonFlags
	theme   themeFlags
	style   string
	words   int
	output  string
	preview previewFlags
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	theme   themeFlags
	output  string
	images  string
	workers int
	preview previewFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "deadline for the whole command (e.g., 5m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addThemeFlags adds theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "theme name (default: classic)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addPreviewFlags adds preview flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.BoolVar(&f.enabled, "preview", false, "also write a phone-width PDF preview")
	fs.StringVar(&f.date, "date", "", "preview date line: auto, auto:FORMAT or text")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, usage io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &generateFlags{}

	fs.StringVarP(&f.style, "style", "s", "", "article persona (see: md2wechat styles)")
	fs.IntVarP(&f.words, "words", "n", 0, "target length in characters (1000-3000)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addPreviewFlags(fs, &f.preview)

	fs.Usage = func() { printGenerateUsage(usage) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.images, "images", "", "YAML file mapping image descriptions to URLs or files")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addPreviewFlags(fs, &f.preview)

	fs.Usage = func() { printRenderUsage(usage) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFlagSet parses args and tags malformed flags as usage errors.
// pflag prints the usage itself on --help and returns flag.ErrHelp.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// hasVerboseFlag reports whether args request verbose output.
// Used before command parsing to configure startup logging.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
