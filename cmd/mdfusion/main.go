package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdfusion "github.com/alnah/go-mdfusion"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Parse flags first to know verbose before anything logs.
	flags, err := parseKnownFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout)
			os.Exit(ExitSuccess)
		}
		fmt.Fprintln(env.Stderr, err)
		os.Exit(ExitUsage)
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	svc := mdfusion.New()
	runErr := run(context.Background(), os.Args[1:], flags, svc, env)
	_ = svc.Close()

	if runErr != nil {
		fmt.Fprintln(env.Stderr, runErr)
		os.Exit(exitCodeFor(runErr))
	}
}
