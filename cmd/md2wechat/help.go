package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Write, illustrate and style an article about a topic")
	fmt.Fprintln(w, "  render     Style existing markdown files for WeChat")
	fmt.Fprintln(w, "  styles     List article personas and themes")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2wechat help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat generate <topic> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate an article with Gemini and save it as WeChat-ready HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Writes <slug>.html, <slug>.md, <slug>.txt and <slug>-cover.txt,")
	fmt.Fprintln(w, "plus <slug>.pdf with --preview.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Article:")
	fmt.Fprintln(w, "  -s, --style <key>         Persona (see: md2wechat styles)")
	fmt.Fprintln(w, "  -n, --words <n>           Target length in characters (1000-3000)")
	fmt.Fprintln(w)
	printSharedUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GEMINI_API_KEY            API key (name set by gemini.apiKeyEnv)")
	fmt.Fprintln(w, "  MD2WECHAT_CONFIG          Default config name or path")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style markdown files for WeChat. Directories are rendered in parallel.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --images <file>       YAML map of image description to URL or file")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printSharedUsage(w)
}

// printSharedUsage prints the flags common to generate and render.
func printSharedUsage(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Deadline for the command (e.g., 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --theme <name>        Theme name (default: classic)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with themes/ and templates/")
	fmt.Fprintln(w, "      --preview             Also write a phone-width PDF preview")
	fmt.Fprintln(w, "      --date <value>        Preview date line: auto, auto:FORMAT or text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate", "gen":
		printGenerateUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: md2wechat styles [--full]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List article personas and themes. * marks the default.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2wechat version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2wechat help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
