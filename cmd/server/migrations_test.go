package main

import (
	"context"
	"testing"

	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_UnknownCommand(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	err := runMigrations(context.Background(), nil, "sideways", log)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown migration command "sideways"`)
}

func TestMigrationCommands(t *testing.T) {
	for _, cmd := range []string{"up", "down", "status", "version"} {
		assert.Contains(t, migrationCommands, cmd)
	}
	assert.NotContains(t, migrationCommands, "reset")
}

func TestSlogGooseLogger(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	gl := &slogGooseLogger{logger: log}

	gl.Printf("OK   %s\n", "00001_create_schema.sql")
	gl.Fatalf("failed to apply %d migrations", 2)

	logger.AssertLogField(t, buf, "msg", "OK   00001_create_schema.sql")
	logger.AssertLogField(t, buf, "msg", "failed to apply 2 migrations")
	logger.AssertLogField(t, buf, "level", "ERROR")
}
