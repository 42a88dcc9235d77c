package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fretcards/internal/cli"
	ferrors "github.com/matzehuels/fretcards/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		if code := ferrors.GetCode(err); code != "" {
			os.Exit(exitCode(code))
		}
		os.Exit(1)
	}
}

// exitCode maps input problems to 2 so scripts can tell them apart from
// failures while writing.
func exitCode(code ferrors.Code) int {
	switch code {
	case ferrors.ErrCodeInvalidInput, ferrors.ErrCodeInvalidPosition, ferrors.ErrCodeInvalidConfig,
		ferrors.ErrCodeInvalidFormat, ferrors.ErrCodeInvalidPath, ferrors.ErrCodeInvalidPlan,
		ferrors.ErrCodeFileNotFound, ferrors.ErrCodeNotFound:
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Set the log level before the root's own pre-run loads config.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
