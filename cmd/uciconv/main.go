package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"uciconv/internal/logging"
)

func main() {
	if err := logging.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "uciconv: logging: %v\n", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uciconv: %v\n", err)
		os.Exit(1)
	}
}
