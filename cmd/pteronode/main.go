// Package main is the entry point for the pteronode CLI.
//
// pteronode registers the host it runs on as a node of a local
// Pterodactyl panel: it creates the node through artisan, logs in to the
// panel, mints the install token and prints the wings configure command.
//
// Commands: import, address, doctor, version, completion.
//
// For detailed usage information, run:
//
//	pteronode --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oneclickvirt/pterodactyl/cmd/pteronode/commands"
	"github.com/oneclickvirt/pterodactyl/cmd/pteronode/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, handlers.FormatError(err))
		os.Exit(1)
	}
}
