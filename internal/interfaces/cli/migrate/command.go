package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"medrecords/internal/infrastructure/database"
	"medrecords/internal/infrastructure/migration"
	"medrecords/internal/interfaces/cli/bootstrap"
	"medrecords/internal/shared/logger"
)

var (
	env        string
	configPath string
	steps      int
)

// NewCommand groups the goose migration subcommands. The SQL scripts are
// embedded, so the binary can migrate from any working directory.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		RunE:  withStrategy(migrateDown),
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: withStrategy(migrateUp)},
		down,
		&cobra.Command{Use: "status", Short: "Show the applied version and pending scripts", RunE: withStrategy(showStatus)},
	)
	return cmd
}

type strategyFunc func(cmd *cobra.Command, s *migration.GooseStrategy, gdb *gorm.DB, log logger.Interface) error

// withStrategy boots config, logging and the database, builds the goose
// strategy for the configured driver and tears everything down afterwards.
func withStrategy(fn strategyFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap.Init(env, configPath, "")
		if err != nil {
			return err
		}
		defer bootstrap.Close()

		strategy, err := migration.NewGooseStrategy(cfg.Database.Driver)
		if err != nil {
			return err
		}
		return fn(cmd, strategy, database.Get(), log)
	}
}

func migrateUp(_ *cobra.Command, s *migration.GooseStrategy, gdb *gorm.DB, log logger.Interface) error {
	log.Infow("applying migrations", "environment", env)
	if err := s.Migrate(gdb); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Infow("migrations applied")
	return nil
}

func migrateDown(_ *cobra.Command, s *migration.GooseStrategy, gdb *gorm.DB, log logger.Interface) error {
	log.Infow("rolling back migrations", "environment", env, "steps", steps)
	if err := s.MigrateDown(gdb, steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	log.Infow("rollback finished")
	return nil
}

func showStatus(cmd *cobra.Command, s *migration.GooseStrategy, gdb *gorm.DB, _ logger.Interface) error {
	version, err := s.GetVersion(gdb)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "environment:     %s\n", env)
	fmt.Fprintf(out, "current version: %d\n", version)

	return s.Status(gdb)
}
