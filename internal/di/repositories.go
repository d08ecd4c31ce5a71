package di

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/teletec/intercom-configurator/internal/modules/settings"
)

// InitializeRepositories creates the repositories backed by the databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.ConfigDB == nil {
		return fmt.Errorf("config database not initialized")
	}

	container.SettingsRepo = settings.NewRepository(container.ConfigDB.Conn(), log)

	log.Info().Msg("Repositories initialized")
	return nil
}
