package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/puzzlesheet/internal/cli"
	psgerrors "github.com/matzehuels/puzzlesheet/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", psgerrors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) (err error) {
	c := cli.New(os.Stderr, cli.LogInfo)
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return c.RootCommand().ExecuteContext(ctx)
}
