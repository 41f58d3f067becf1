package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/doeshing/clicra-go/internal/infrastructure/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{Version: version})
	stop()
	os.Exit(code)
}
