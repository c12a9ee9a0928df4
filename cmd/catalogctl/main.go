package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Maintenance tasks for the Vines catalog service",
		Long: `catalogctl runs one-off maintenance tasks against the catalog database
configured through the same environment variables (and .env file) as the server.

Examples:
  catalogctl migrate                      # apply pending migrations
  catalogctl seed                         # add the sample categories and products
  catalogctl reset-db --force             # drop every table and migrate again
  catalogctl create-admin --username sara --password 's3cret-pass' --role admin`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newResetCommand())
	root.AddCommand(newBootstrapCommand())
	root.AddCommand(newCreateAdminCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
