package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
	"github.com/oneclickvirt/pterodactyl/internal/provisioning"
	"github.com/oneclickvirt/pterodactyl/internal/ui/style"
	"github.com/oneclickvirt/pterodactyl/internal/util/prerequisites"
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkTools looks up php and the optional tools.
	checkTools = prerequisites.CheckAll

	// checkPanelDir verifies the panel installation.
	checkPanelDir = prerequisites.CheckPanelDir
)

// doctorCheck is one line of doctor output.
type doctorCheck struct {
	Name     string
	OK       bool
	Required bool
	Detail   string
}

// Doctor handles the doctor command.
//
// It reports every check instead of stopping at the first failure and
// returns an error when a required check failed.
func Doctor(ctx context.Context, configPath string, skipAddress bool) error {
	var checks []doctorCheck

	rootErr := checkRoot()
	checks = append(checks, doctorCheck{Name: "Root", OK: rootErr == nil, Required: true, Detail: errDetail(rootErr)})

	cfg, err := loadConfig(configPath)
	if err != nil {
		checks = append(checks, doctorCheck{Name: "Configuration", Required: true, Detail: err.Error()})
		cfg = config.Default()
	} else {
		checks = append(checks, doctorCheck{Name: "Configuration", OK: true, Required: true, Detail: configSource(configPath)})
	}

	for _, r := range checkTools(cfg.PHP).Results {
		detail := r.Tool.Description
		if r.Found {
			detail = r.Path
			if r.Version != "" {
				detail += " (" + r.Version + ")"
			}
		}
		checks = append(checks, doctorCheck{Name: r.Tool.Name, OK: r.Found, Required: r.Tool.Required, Detail: detail})
	}

	panelErr := checkPanelDir(cfg.PanelDir)
	checks = append(checks, doctorCheck{Name: "Panel", OK: panelErr == nil, Required: true, Detail: detailOr(panelErr, cfg.PanelDir)})

	creds, credsErr := panel.LoadCredentials(cfg.CredentialsFile)
	checks = append(checks, doctorCheck{Name: "Credentials", OK: credsErr == nil, Required: true, Detail: detailOr(credsErr, creds.URL+" as "+creds.Email)})

	if !skipAddress {
		observer := provisioning.NewConsoleObserver(logr.Discard())
		addr, err := newResolver(cfg, config.LoadTimeouts(), observer).Lookup(ctx)
		detail := addr
		if errors.Is(err, provisioning.ErrNetwork) {
			detail = "no public address found, pass --address to import: " + err.Error()
		}
		checks = append(checks, doctorCheck{Name: "Address", OK: err == nil, Detail: detail})
	}

	printDoctor(checks)

	failed := 0
	for _, c := range checks {
		if c.Required && !c.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d required check(s) failed", failed)
	}
	return nil
}

func printDoctor(checks []doctorCheck) {
	fmt.Fprintln(stdout, style.Heading("pteronode doctor"))
	for _, c := range checks {
		printRow(c)
	}
}

func printRow(c doctorCheck) {
	if c.Detail != "" {
		fmt.Fprintf(stdout, "  %s  %-14s %s\n", style.Status(c.OK, c.Required), c.Name, style.Dim(c.Detail))
	} else {
		fmt.Fprintf(stdout, "  %s  %s\n", style.Status(c.OK, c.Required), c.Name)
	}
}

func configSource(path string) string {
	if path == "" {
		return config.DefaultConfigFile + " or built-in defaults"
	}
	return path
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func detailOr(err error, ok string) string {
	if err != nil {
		return err.Error()
	}
	return ok
}
