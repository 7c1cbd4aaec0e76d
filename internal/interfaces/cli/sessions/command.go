package sessions

import (
	"fmt"

	"github.com/spf13/cobra"

	"medrecords/internal/application/user/usecases"
	"medrecords/internal/infrastructure/database"
	"medrecords/internal/infrastructure/repository"
	"medrecords/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Deactivate every expired session once",
		RunE:  runSweep,
	})

	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Init(env, configPath, "")
	if err != nil {
		return err
	}
	defer bootstrap.Close()

	sweep := usecases.NewSweepExpiredSessionsUseCase(repository.NewSessionRepository(database.Get()), nil, log)
	count, err := sweep.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("session sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d expired session(s)\n", count)
	return nil
}
