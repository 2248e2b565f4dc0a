// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jinzhu/gorm"

	"github.com/Kunxl-4568/VirtualKitchen/database"
)

// New returns a migrated database backed by a file in t.TempDir.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "kitchen.db"), 0, false)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
