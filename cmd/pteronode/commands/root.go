// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the pteronode CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pteronode",
		Short:         "Register this host as a Pterodactyl node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Import())
	cmd.AddCommand(Address())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
