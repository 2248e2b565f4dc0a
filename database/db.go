package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/Kunxl-4568/VirtualKitchen/config"
	"github.com/Kunxl-4568/VirtualKitchen/models"
)

// Connect opens the configured database and applies pool limits.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DBDriver, cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBDebug)
}

func Open(driver, dsn string, maxOpen int, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}

	if maxOpen > 0 {
		db.DB().SetMaxOpenConns(maxOpen)
		db.DB().SetMaxIdleConns(maxOpen / 2)
	}
	db.DB().SetConnMaxLifetime(30 * time.Minute)
	db.BlockGlobalUpdate(true)

	if debug {
		db = db.Debug()
	}
	return db, nil
}

// Migrate creates or updates all tables. Postgres additionally gets the
// foreign keys that sqlite cannot add after the fact.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...).Error; err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialect().GetName() != "postgres" {
		return nil
	}

	foreignKeys := []struct {
		model    interface{}
		field    string
		dest     string
		onDelete string
	}{
		{&models.Recipe{}, "user_id", "users(id)", "CASCADE"},
		{&models.Recipe{}, "category_id", "categories(id)", "RESTRICT"},
		{&models.Recipe{}, "cuisine_id", "cuisines(id)", "RESTRICT"},
		{&models.RecipeIngredient{}, "recipe_id", "recipes(id)", "CASCADE"},
		{&models.RecipeIngredient{}, "ingredient_id", "ingredients(id)", "CASCADE"},
		{&models.Instruction{}, "recipe_id", "recipes(id)", "CASCADE"},
	}

	// AddForeignKey is a no-op when the constraint already exists.
	for _, fk := range foreignKeys {
		if err := db.Model(fk.model).AddForeignKey(fk.field, fk.dest, fk.onDelete, "CASCADE").Error; err != nil {
			return fmt.Errorf("add foreign key %s -> %s: %w", fk.field, fk.dest, err)
		}
	}
	return nil
}
