package handlers

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/provisioning"
	"github.com/oneclickvirt/pterodactyl/internal/util/netutil"
)

// Factory function variables - can be replaced in tests.
var (
	// stdout receives the command output meant for capture.
	stdout io.Writer = os.Stdout

	// stderr receives logs and diagnostics.
	stderr io.Writer = os.Stderr

	// isInteractive reports whether prompts can be shown.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	}

	// stderrIsTerminal reports whether styled banners can go to stderr.
	stderrIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}

	// newLocalSource returns where the resolver reads local addresses.
	newLocalSource = func() netutil.LocalSource { return netutil.SystemLocalSource{} }
)

// newObserver returns a console observer logging to stderr and its logger.
func newObserver(verbose bool) (provisioning.Observer, logr.Logger) {
	logger := provisioning.NewLogger(stderr, verbose)
	return provisioning.NewConsoleObserver(logger), logger
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, provisioning.Wrap(provisioning.KindConfig, "load configuration", err)
	}
	return cfg, nil
}

func newResolver(cfg *config.Config, timeouts *config.Timeouts, observer provisioning.Observer) *netutil.Resolver {
	return netutil.NewResolver(
		netutil.WithEndpoints(cfg.AddressEndpoints),
		netutil.WithAttemptTimeout(timeouts.AddressLookup),
		netutil.WithRetryDelay(timeouts.AddressRetryDelay),
		netutil.WithLocalSource(newLocalSource()),
		netutil.WithObserver(observer),
	)
}

var errorHints = map[provisioning.Kind]string{
	provisioning.KindPrivilege:    "run as root, or pass --skip-root-check",
	provisioning.KindConfig:       "run pteronode doctor to check the configuration and the credentials file",
	provisioning.KindProvisioning: "nothing was registered; fix the artisan error and run import again",
}

// FormatError renders err for the terminal, with a hint for the failures an
// operator can fix on the spot.
func FormatError(err error) string {
	msg := "Error: " + err.Error()
	if kind, ok := provisioning.KindOf(err); ok {
		if hint := errorHints[kind]; hint != "" {
			msg += "\nHint: " + hint
		}
	}
	return msg
}
