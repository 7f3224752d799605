package handlers

import (
	"context"
	"fmt"

	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// Address handles the address command by printing the resolved address.
func Address(ctx context.Context, configPath string, verbose bool) error {
	observer, _ := newObserver(verbose)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	addr := newResolver(cfg, config.LoadTimeouts(), observer).Resolve(ctx)
	_, err = fmt.Fprintln(stdout, addr)
	return err
}
