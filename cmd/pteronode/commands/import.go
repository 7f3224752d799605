package commands

import (
	"github.com/spf13/cobra"

	"github.com/oneclickvirt/pterodactyl/cmd/pteronode/handlers"
	"github.com/oneclickvirt/pterodactyl/internal/config"
)

// Import returns the command that creates and registers a node.
//
// Optional flags:
//
//	--config, -c: Path to the defaults file (default: /etc/pteronode.yaml)
//	--name, --memory, --memory-overallocate, --disk, --disk-overallocate: node settings
//	--address: Node address, skips discovery
//	--node-id: Node ID to issue the token for, skips the confirmation prompt
//	--non-interactive: Never prompt
//	--skip-root-check: Do not require root
//	--metrics-file: Write run metrics in Prometheus text format
//	--verbose, -v: Log every address attempt and request detail
func Import() *cobra.Command {
	var opts handlers.ImportOptions
	defaults := config.DefaultNodeSpec()

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a node in the local panel and print its wings command",
		Long: `Create a node in the local Pterodactyl panel and print the command that
configures wings on this host.

Steps:
  1. Find this host's public IPv4 address
  2. Create the node with php artisan p:node:make
  3. Log in to the panel with the installer's admin credentials
  4. Detect the new node's ID (and let you confirm it)
  5. Mint an install token and print the wings configure command

The node is not removed if a later step fails.

Only the wings command is written to standard output, so it can be captured:

  cmd=$(pteronode import --non-interactive) && eval "$cmd"

Examples:
  # Prompt for node settings
  pteronode import

  # Fully scripted
  pteronode import --non-interactive --name edge-1 --memory 8192 --disk 102400

  # Behind NAT with a known address
  pteronode import --address 203.0.113.7 --node-id 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Import(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to defaults file (default: "+config.DefaultConfigFile+")")
	f.StringVar(&opts.Name, "name", defaults.Name, "Node name")
	f.IntVar(&opts.MemoryMB, "memory", defaults.MemoryMB, "Node memory in MB")
	f.IntVar(&opts.MemoryOverallocate, "memory-overallocate", defaults.MemoryOverallocate, "Memory overallocation in percent (-1 disables the check)")
	f.IntVar(&opts.DiskMB, "disk", defaults.DiskMB, "Node disk in MB")
	f.IntVar(&opts.DiskOverallocate, "disk-overallocate", defaults.DiskOverallocate, "Disk overallocation in percent (-1 disables the check)")
	f.StringVar(&opts.Address, "address", "", "Node address (default: discovered public IPv4)")
	f.IntVar(&opts.NodeID, "node-id", 0, "Node ID to issue the token for (default: newest node)")
	f.BoolVar(&opts.NonInteractive, "non-interactive", false, "Never prompt; use flags and defaults")
	f.BoolVar(&opts.SkipRootCheck, "skip-root-check", false, "Do not require root")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus text format")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}
