package commands

import (
	"fmt"

	"github.com/campuscred/campuscred/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
)

// MigrateCmd creates or updates the database schema
func MigrateCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	if err := persistence.Migrate(env.db); err != nil {
		return err
	}
	env.logger.Info("Database migrations completed successfully")
	return nil
}

// InitDatabaseCommands registers the schema commands
func InitDatabaseCommands(rootCmd *cobra.Command) error {
	if rootCmd == nil {
		return fmt.Errorf("root command is nil")
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  MigrateCmd,
	})
	return nil
}
