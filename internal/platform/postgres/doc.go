// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
//
// Reads on projects, tasks, and comments go through an ownershipScope, which
// joins each entity up to projects.owner_id and adds the caller's id as the
// first predicate. Writes repeat the same predicate inline, so a statement
// against another user's row affects nothing and surfaces as not-found.
package postgres
