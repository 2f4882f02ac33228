package commands

import (
	"fmt"

	"github.com/campuscred/campuscred/internal/infrastructure/persistence"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const defaultConfigPath = "../../configs/cli-app.yaml"

// environment holds the logger and database every command works with
type environment struct {
	db     *gorm.DB
	logger logger.Logger
}

func (e *environment) close() {
	if err := persistence.CloseDB(e.db); err != nil {
		e.logger.Warn("Failed to close database: ", err)
	}
}

func setupEnvironment(cmd *cobra.Command) (*environment, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.InitializeCliConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	return &environment{db: db, logger: loggerInstance}, nil
}
