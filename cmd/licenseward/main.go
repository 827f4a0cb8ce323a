package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/licenseward/licenseward/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := cli.Execute(ctx)
	if ctx.Err() != nil {
		code = 130 // Standard shell convention for SIGINT
	}
	os.Exit(code)
}
