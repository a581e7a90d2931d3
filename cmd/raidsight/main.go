package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raidsight/raidsight/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Get().Error(ctx, "command failed", logger.Error(err))
		os.Exit(1)
	}
}
