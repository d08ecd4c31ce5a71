package di

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/config"
	"github.com/teletec/intercom-configurator/internal/database"
)

// InitializeDatabases opens config.db and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	configDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "config",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config database: %w", err)
	}

	if err := configDB.Migrate(); err != nil {
		configDB.Close()
		return nil, fmt.Errorf("failed to migrate config database: %w", err)
	}
	container.ConfigDB = configDB

	log.Info().Str("path", configDB.Path()).Msg("Database initialized")
	return container, nil
}
