package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdConfig  = "config"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args (os.Args layout) and returns the
// process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	// "mdsite" and "mdsite --flags" both mean build.
	cmd := cmdBuild
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case cmdBuild:
		err = runSiteCommand(args, parseBuildFlags, func(flags *buildFlags, rest []string) error {
			return runBuild(ctx, rest, flags, env)
		})
	case cmdConfig:
		err = runSiteCommand(args, parseConfigFlags, func(flags *buildFlags, rest []string) error {
			return runConfig(rest, flags, env)
		})
	case cmdDoctor:
		err = runSiteCommand(args, parseDoctorFlags, func(flags *buildFlags, rest []string) error {
			return runDoctor(rest, flags, env)
		})
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "go-mdsite %s\n", Version)
	case cmdHelp:
		err = runHelp(args, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// runSiteCommand parses flags for a command and runs it.
// Flag parse errors are usage errors.
func runSiteCommand(
	args []string,
	parse func([]string) (*buildFlags, []string, error),
	run func(*buildFlags, []string) error,
) error {
	flags, rest, err := parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	return run(flags, rest)
}

// hasVerboseFlag reports whether args request verbose output.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
