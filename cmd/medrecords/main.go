package main

import (
	"os"

	"github.com/spf13/cobra"

	"medrecords/internal/interfaces/cli/migrate"
	"medrecords/internal/interfaces/cli/server"
	"medrecords/internal/interfaces/cli/sessions"
	"medrecords/internal/interfaces/cli/users"
	"medrecords/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medrecords",
		Short: "Medical records API",
		Long:  `medrecords stores patients' medical files behind cookie sessions. It ships the HTTP server, migration tools and maintenance commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sessions.NewCommand(),
		users.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
