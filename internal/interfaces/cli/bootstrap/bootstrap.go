// Package bootstrap prepares config, logging, timezone and database for the
// CLI commands.
package bootstrap

import (
	"fmt"

	"medrecords/internal/infrastructure/config"
	"medrecords/internal/infrastructure/database"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/logger"
)

// Init loads the config, initializes the logger and the business timezone,
// and opens the database. Callers must defer Close.
func Init(env, configPath, mode string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if mode != "" {
		cfg.Server.Mode = mode
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

// Close releases what Init opened.
func Close() {
	_ = database.Close()
	_ = logger.Sync()
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
