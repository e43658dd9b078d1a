package testdb

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/phrazzld/tasktrack-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// MigrationTableName matches the table the server's -migrate command uses.
const MigrationTableName = "schema_migrations"

var (
	migrateOnce sync.Once
	migrateErr  error
)

type silentGooseLogger struct{}

func (silentGooseLogger) Printf(string, ...interface{}) {}
func (silentGooseLogger) Fatalf(format string, v ...interface{}) {
	panic(fmt.Sprintf(format, v...))
}

// ApplyMigrations brings the schema up to date using the embedded
// migrations. It runs at most once per test binary.
func ApplyMigrations(db *sql.DB) error {
	migrateOnce.Do(func() {
		goose.SetLogger(silentGooseLogger{})
		goose.SetTableName(MigrationTableName)
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			migrateErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}
		if err := goose.Up(db, "."); err != nil {
			migrateErr = fmt.Errorf("failed to run migrations: %w", err)
		}
	})
	return migrateErr
}
