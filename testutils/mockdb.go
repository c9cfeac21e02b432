package testutils

import (
	"database/sql"
	"testing"

	"notion-blocks/blockmirror/config"
	"notion-blocks/blockmirror/database"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupMockDB sets up a mock database connection
func SetupMockDB() (*database.Database, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		panic(err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(err)
	}

	mockDB := &database.Database{
		DB: gormDB,
	}

	close := func() {
		db.Close()
	}

	return mockDB, mock, close
}

// SetupTestDB opens a migrated in-memory SQLite database that lives until
// the test ends.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.Setup(config.Config{
		AppEnv:   "test",
		DBDriver: "sqlite",
		DBPath:   ":memory:",
	})
	require.NoError(t, err)

	t.Cleanup(db.Close)
	return db
}
