package main

import (
	"os"

	"github.com/spf13/cobra"

	"derbydesk/internal/interfaces/cli/admin"
	"derbydesk/internal/interfaces/cli/db"
	"derbydesk/internal/interfaces/cli/migrate"
	"derbydesk/internal/interfaces/cli/schema"
	"derbydesk/internal/interfaces/cli/server"
	"derbydesk/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "derbydesk",
		Short: "DerbyDesk - internal ticket tracking",
		Long:  `DerbyDesk serves the ticket-tracking web UI, admin console, and read API, with migration and account tooling built in.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
		token.NewCommand(),
		db.NewCommand(),
		schema.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
