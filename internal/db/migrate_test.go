package db_test

import (
	"path/filepath"
	"testing"

	"github.com/skipjar/skipjar/internal/db"
	"github.com/skipjar/skipjar/internal/testutil"
)

func TestMigrations_UpDownStatus(t *testing.T) {
	database, err := db.Init(db.DriverSQLite, testutil.SQLiteDSN(filepath.Join(t.TempDir(), "nested", "ledger.db")))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, db.DriverSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	version, err := db.MigrationStatus(database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("MigrationStatus: %v", err)
	}
	if version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}

	// idempotent
	if err := db.RunMigrations(database.DB, db.DriverSQLite); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}

	if err := db.MigrateDown(database.DB, db.DriverSQLite); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	version, err = db.MigrationStatus(database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("MigrationStatus after down: %v", err)
	}
	if version != 0 {
		t.Errorf("version after down = %d, want 0", version)
	}

	var tables int
	err = database.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'habits'`)
	if err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if tables != 0 {
		t.Error("habits table survived MigrateDown")
	}
}
