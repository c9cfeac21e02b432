package database

import (
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/logger"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	logger.Log.Info().Msg("Running database migrations...")

	err := db.AutoMigrate(
		&models.BlockRecord{},
		&models.Event{},
		&models.Integration{},
	)

	if err != nil {
		logger.Log.Error().Err(err).Msg("Migration failed")
		return err
	}

	return nil
}
