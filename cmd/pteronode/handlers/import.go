package handlers

import (
	"context"
	"fmt"

	"github.com/oneclickvirt/pterodactyl/internal/config"
	"github.com/oneclickvirt/pterodactyl/internal/config/wizard"
	"github.com/oneclickvirt/pterodactyl/internal/platform/artisan"
	"github.com/oneclickvirt/pterodactyl/internal/platform/panel"
	"github.com/oneclickvirt/pterodactyl/internal/provisioning"
	"github.com/oneclickvirt/pterodactyl/internal/ui/style"
	"github.com/oneclickvirt/pterodactyl/internal/util/prerequisites"
)

// ImportOptions holds the import command flags.
type ImportOptions struct {
	ConfigPath string

	Name               string
	MemoryMB           int
	MemoryOverallocate int
	DiskMB             int
	DiskOverallocate   int
	Address            string
	NodeID             int

	NonInteractive bool
	SkipRootCheck  bool
	MetricsFile    string
	Verbose        bool
}

// Factory function variables for import - can be replaced in tests.
var (
	// newRunner returns the process runner for artisan.
	newRunner = func() artisan.Runner { return artisan.ExecRunner{} }

	// checkRoot verifies the process runs as root.
	checkRoot = prerequisites.CheckRoot

	// checkHost verifies php and the panel installation.
	checkHost = func(cfg *config.Config) error {
		if err := prerequisites.Check(prerequisites.DefaultTools(cfg.PHP)).Error(); err != nil {
			return err
		}
		return prerequisites.CheckPanelDir(cfg.PanelDir)
	}

	// runNodeWizard prompts for node settings.
	runNodeWizard = wizard.RunNodeWizard

	// confirmNodeID prompts for the node ID.
	confirmNodeID = wizard.ConfirmNodeID
)

// Import handles the import command.
//
// This function registers the host as a panel node:
//  1. Checks privileges, configuration and the panel installation
//  2. Collects node settings from flags or prompts
//  3. Resolves the node address
//  4. Runs the provisioning phases, which print the wings command
func Import(ctx context.Context, opts ImportOptions) error {
	observer, logger := newObserver(opts.Verbose)

	if !opts.SkipRootCheck {
		if err := checkRoot(); err != nil {
			return provisioning.Wrap(provisioning.KindPrivilege, "check privileges", err)
		}
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := checkHost(cfg); err != nil {
		return provisioning.Wrap(provisioning.KindConfig, "check prerequisites", err)
	}
	timeouts := config.LoadTimeouts()

	interactive := !opts.NonInteractive && isInteractive()

	spec := opts.nodeSpec()
	if interactive {
		var fellBack bool
		spec, fellBack, err = runNodeWizard(ctx, spec)
		if err != nil {
			return provisioning.Wrap(provisioning.KindConfig, "read node settings", err)
		}
		if fellBack {
			provisioning.LogWarning(observer, "input", "node quotas must be whole numbers, using the defaults")
		}
	}

	if opts.Address != "" {
		spec.FQDN = opts.Address
	} else {
		spec.FQDN = newResolver(cfg, timeouts, observer).Resolve(ctx)
	}
	if err := spec.Validate(); err != nil {
		return provisioning.Wrap(provisioning.KindConfig, "validate node settings", err)
	}

	nodes := artisan.New(newRunner(), cfg.PanelDir, cfg.PHP, cfg.Node,
		artisan.WithCommandTimeout(timeouts.Command))

	newSession := func(creds panel.Credentials) (provisioning.PanelSession, error) {
		c, err := panel.NewClient(creds.URL,
			panel.WithTimeout(timeouts.HTTP),
			panel.WithLogger(logger.WithName("panel")),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	popts := []provisioning.Option{
		provisioning.WithObserver(observer),
		provisioning.WithOutput(stdout),
	}
	switch {
	case opts.NodeID > 0:
		id := opts.NodeID
		popts = append(popts, provisioning.WithConfirmer(provisioning.ConfirmFunc(
			func(context.Context, int) (int, error) { return id, nil })))
	case interactive:
		popts = append(popts, provisioning.WithConfirmer(provisioning.ConfirmFunc(confirmNodeID)))
	}

	var metrics *provisioning.Metrics
	if opts.MetricsFile != "" {
		metrics = provisioning.NewMetrics()
		popts = append(popts, provisioning.WithMetrics(metrics))
	}

	p := provisioning.New(nodes, panel.CredentialsFile(cfg.CredentialsFile), newSession, popts...)
	state, runErr := p.Run(ctx, spec)

	if metrics != nil {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Error(err, "failed to write metrics", "path", opts.MetricsFile)
		}
	}

	if runErr != nil {
		if state.NodeCreated() {
			msg := fmt.Sprintf("node %q was created but not registered; remove it in the panel before retrying", spec.Name)
			provisioning.LogWarning(observer, "import", msg)
			if stderrIsTerminal() {
				fmt.Fprintln(stderr, style.Warning(msg))
			}
		}
		return runErr
	}

	if stderrIsTerminal() {
		printBanner(state)
	}
	return nil
}

// printBanner repeats the registration command on stderr for an operator
// at a terminal. Stdout keeps only the bare command.
func printBanner(state *provisioning.State) {
	fmt.Fprintln(stderr, style.Heading(fmt.Sprintf("Node %d registered. Run this on the node to configure wings:", state.NodeID)))
	fmt.Fprintln(stderr, "  "+style.Command(state.Command))
}

func (o ImportOptions) nodeSpec() config.NodeSpec {
	return config.NodeSpec{
		Name:               o.Name,
		MemoryMB:           o.MemoryMB,
		MemoryOverallocate: o.MemoryOverallocate,
		DiskMB:             o.DiskMB,
		DiskOverallocate:   o.DiskOverallocate,
	}
}
