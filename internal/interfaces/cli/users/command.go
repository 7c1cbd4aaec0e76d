package users

import (
	"fmt"

	"github.com/spf13/cobra"

	"medrecords/internal/application/user/usecases"
	"medrecords/internal/infrastructure/database"
	"medrecords/internal/infrastructure/repository"
	"medrecords/internal/interfaces/cli/bootstrap"
	"medrecords/internal/shared/db"
)

var (
	env        string
	configPath string
	email      string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	deactivate := &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate an account and revoke its sessions",
		RunE:  runDeactivate,
	}
	deactivate.Flags().StringVar(&email, "email", "", "Email of the account (required)")
	_ = deactivate.MarkFlagRequired("email")

	cmd.AddCommand(deactivate)
	return cmd
}

func runDeactivate(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.Init(env, configPath, "")
	if err != nil {
		return err
	}
	defer bootstrap.Close()

	gdb := database.Get()
	uc := usecases.NewDeactivateUserUseCase(
		repository.NewUserRepository(gdb, log),
		repository.NewSessionRepository(gdb),
		db.NewTransactionManager(gdb),
		log,
	)

	revoked, err := uc.Execute(cmd.Context(), email)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "account deactivated, %d session(s) revoked\n", revoked)
	return nil
}
