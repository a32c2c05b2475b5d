// Package main is the ichu terminal client for the card catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ryuseikaiz/Ichu-Database/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
