// Package main is the entry point for the alchemy CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/syssam/alchemy/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
