package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	env := DefaultEnv()
	warnUnknownEnvVars(env.Stderr, os.Environ())

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches the command in args and returns the process exit code.
// Errors are printed to env.Stderr with a hint when one applies.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "generate", "gen":
		err = runGenerate(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "styles":
		err = runStyles(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2wechat %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, env.apiKeyEnv))
		if errors.Is(err, ErrUnknownCommand) {
			return ExitUsage
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}
