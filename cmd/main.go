package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/cli"
)

func main() {
	// Cancel in-flight lookups and retry waits on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.New().Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
