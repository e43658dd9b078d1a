// Package store defines the persistence interfaces for users, projects,
// tasks, and comments.
//
// Every read and write on projects, tasks, and comments takes the caller's
// user id and is filtered by the ownership chain User → Project → Task →
// Comment. A row outside the caller's scope is reported exactly like a row
// that does not exist (ErrNotFound), so callers cannot probe for other
// users' data.
package store
