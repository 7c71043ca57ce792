package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	md2wechat "github.com/alnah/go-md2wechat"
)

// statusPrinter writes human-readable progress lines.
// Progress goes to stderr so stdout stays clean for file listings.
type statusPrinter struct {
	w       io.Writer
	out     io.Writer
	quiet   bool
	verbose bool
	now     func() time.Time
	start   time.Time

	stage *color.Color
	ok    *color.Color
	warn  *color.Color
}

// newStatusPrinter creates a printer for env. Colors are disabled when
// NO_COLOR is set or the terminal does not support them.
func newStatusPrinter(env *Environment, quiet, verbose bool) *statusPrinter {
	noColor := color.NoColor || env.Getenv("NO_COLOR") != ""

	p := &statusPrinter{
		w:       env.Stderr,
		out:     env.Stdout,
		quiet:   quiet,
		verbose: verbose,
		now:     env.Now,
		start:   env.Now(),
		stage:   color.New(color.FgCyan, color.Bold),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
	if noColor {
		p.stage.DisableColor()
		p.ok.DisableColor()
		p.warn.DisableColor()
	}
	return p
}

// Progress prints a generation update.
func (p *statusPrinter) Progress(pr md2wechat.Progress) {
	if p.quiet {
		return
	}

	label := string(pr.Stage)
	if pr.Total > 0 && pr.Current > 0 {
		label = fmt.Sprintf("%s %d/%d", label, pr.Current, pr.Total)
	}

	if p.verbose {
		fmt.Fprintf(p.w, "%s %s %s\n", p.elapsed(), p.stage.Sprint("["+label+"]"), pr.Message)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.stage.Sprint("["+label+"]"), pr.Message)
}

// Created reports a written file.
func (p *statusPrinter) Created(path string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.ok.Sprint("Created"), path)
}

// Warn prints a warning. Warnings are shown even in quiet mode.
func (p *statusPrinter) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.warn.Sprint("warning:"), fmt.Sprintf(format, args...))
}

// Verbose prints a line only in verbose mode.
func (p *statusPrinter) Verbose(format string, args ...any) {
	if !p.verbose || p.quiet {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.elapsed(), fmt.Sprintf(format, args...))
}

// elapsed formats the time since the printer was created.
func (p *statusPrinter) elapsed() string {
	return fmt.Sprintf("%7s", p.now().Sub(p.start).Round(100*time.Millisecond))
}
