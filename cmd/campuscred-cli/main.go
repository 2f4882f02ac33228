// Package main is the entry point for the campuscred-cli application.
// It registers the database and account administration commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/campuscred/campuscred/cmd/campuscred-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "campuscred-cli",
		Short: "CampusCred administration CLI tool",
		Long: `campuscred-cli runs maintenance tasks against the CampusCred database.
It can migrate the schema, bootstrap administrator accounts and change user roles.

The configuration file is taken from --config, or from CONFIG_PATH when the flag is not set.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML configuration file")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitDatabaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize database commands: %w", err)
	}

	if err := commands.InitProfileCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize profile commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
