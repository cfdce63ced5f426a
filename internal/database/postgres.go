package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/config"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/models"
)

// Connect opens a Postgres connection from config and hands it back to the
// caller. There is no package-level DB handle.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.Artist{},
		&models.Track{},
		&models.Playlist{},
		&models.PlaylistTrack{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	log.Println("Database migration completed")
	return nil
}
