package infra

import (
	"fmt"

	"github.com/Valtaor/perso-monstock/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// fixed schema. The column set is versioned here — there is no runtime
// column introspection anywhere else in the codebase.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table of the canonical schema.
// Also used by tests against their own store handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Produit{},
		&model.Categorie{},
		&model.Tag{},
		&model.ProduitCategorie{},
		&model.ProduitTag{},
	)
}
