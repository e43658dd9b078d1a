// Package migrations holds the goose SQL migrations for the PostgreSQL
// schema, embedded so the server binary and integration tests apply the
// same files without locating them on disk.
package migrations

import "embed"

// FS contains every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
