package commands

import (
	"github.com/spf13/cobra"

	"github.com/oneclickvirt/pterodactyl/cmd/pteronode/handlers"
)

// Address returns the command that prints the address a node would be registered under.
func Address() *cobra.Command {
	var configPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print this host's public IPv4 address",
		Long: `Print the public IPv4 address import would register the node under.

A public address on a local interface is used as is. Otherwise the echo
services from the defaults file are asked in order. If none answers,
127.0.0.1 is printed and a warning is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Address(cmd.Context(), configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to defaults file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every echo service attempt")

	return cmd
}
