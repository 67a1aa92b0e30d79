package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/octavarium-xyz/frameworks-base/cmd"
	"github.com/octavarium-xyz/frameworks-base/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)

	observability.Sync()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
