package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasktrack-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// migrationTableName is the goose version table; the integration test
// helpers use the same name.
const migrationTableName = "schema_migrations"

var migrationCommands = map[string]func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error{
	"up":      goose.UpContext,
	"down":    goose.DownContext,
	"status":  goose.StatusContext,
	"version": goose.VersionContext,
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at ERROR without exiting; the failure is returned to main.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// runMigrations executes one goose command against the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	migrate, ok := migrationCommands[command]
	if !ok {
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", command)
	}

	goose.SetLogger(&slogGooseLogger{logger: logger.With("component", "migrations")})
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Executing migrations", "command", command)
	if err := migrate(ctx, db, "."); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	logger.Info("Migrations completed", "command", command)
	return nil
}
