package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duelbot/core/config"
	"duelbot/core/database"
	"duelbot/core/logger"
	"duelbot/feature/catalog"
	deckmodels "duelbot/feature/deck/models"
)

// bootstrap loads configuration, builds the logger and opens the database.
// Every command starts here.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logg, db, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Card{},
		&catalog.Metadata{},
		&deckmodels.Deck{},
		&deckmodels.DeckCard{},
	)
}
