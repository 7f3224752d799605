package commands

import (
	"github.com/spf13/cobra"

	"github.com/oneclickvirt/pterodactyl/cmd/pteronode/handlers"
)

// Doctor returns the command for checking that import can run on this host.
//
// Optional flags:
//
//	--config, -c: Path to the defaults file
//	--skip-address: Do not query echo services
func Doctor() *cobra.Command {
	var configPath string
	var skipAddress bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that this host is ready for import",
		Long: `Check the prerequisites of import without changing anything:

  - root privileges
  - php and wings on PATH
  - panel directory with artisan
  - admin credentials file
  - public address discovery`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, skipAddress)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to defaults file")
	cmd.Flags().BoolVar(&skipAddress, "skip-address", false, "Do not query echo services")

	return cmd
}
