package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/skipjar/skipjar/internal/db"
	"github.com/skipjar/skipjar/internal/repository"
)

// SQLiteDSN builds the connection string the server uses for file databases:
// WAL, a busy timeout and immediate write transactions.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_txlock=immediate"
}

// OpenTestDB opens a migrated SQLite database in a temp directory.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database.DB, db.DriverSQLite); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return database
}

// OpenTestStore wraps OpenTestDB in the SQL ledger store.
func OpenTestStore(t *testing.T) *repository.SQLStore {
	t.Helper()
	return repository.NewSQLStore(OpenTestDB(t))
}

// PostgresTestURLEnv names the variable holding a Postgres URL for
// integration tests.
const PostgresTestURLEnv = "POSTGRES_TEST_URL"

// OpenPostgresTestStore migrates a fresh schema in the database at
// POSTGRES_TEST_URL and drops it when the test ends. It skips the test when
// the variable is unset.
func OpenPostgresTestStore(t *testing.T) *repository.SQLStore {
	t.Helper()

	url := os.Getenv(PostgresTestURLEnv)
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	admin, err := db.Init(db.DriverPostgres, url)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(func() { admin.Close() })

	schema := "skipjar_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec(`CREATE SCHEMA ` + schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec(`DROP SCHEMA ` + schema + ` CASCADE`); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	database, err := db.Init(db.DriverPostgres, url+sep+"search_path="+schema)
	if err != nil {
		t.Fatalf("open postgres schema: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database.DB, db.DriverPostgres); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	return repository.NewSQLStore(database)
}

// Clock is a settable clock for tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// AdvanceDays moves the clock forward by n calendar days.
func (c *Clock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}
