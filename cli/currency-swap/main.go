package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/malusev998/currency-swap/cli/cmd"
)

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx, cmd.Options{Factory: newFetcher}); err != nil {
		stop()
		os.Exit(1)
	}
}
