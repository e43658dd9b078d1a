// Package service contains the application use cases for projects, tasks,
// comments, and user accounts.
//
// Every service method that touches a project, task, or comment takes the
// caller's user id and passes it through to the ownership-scoped stores in
// internal/store. The services add the rules that span more than one entity:
//
//   - a task may only be created in, or moved to, a project the caller owns
//   - an assigned user must exist
//   - a comment may only be added to a task in an owned project
//   - only the author of a comment may change or remove it
//
// Check-then-write sequences run inside a single transaction via
// store.Transactor. Results are returned as transfer shapes (ProjectDTO,
// TaskDTO, CommentDTO) whose projected fields are recomputed on every read.
//
// Errors are sentinels checked with errors.Is. Anything the caller cannot act
// on is wrapped in a *ServiceError.
package service
