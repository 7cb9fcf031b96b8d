package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dicomops/dcmon-cli/internal/interfaces/cli"
	"github.com/dicomops/dcmon-cli/internal/interfaces/di"
)

func main() {
	container := di.NewContainer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand(container.CLI)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
