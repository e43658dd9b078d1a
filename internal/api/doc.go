// Package api holds the HTTP handlers for authentication, projects, tasks
// and comments. Handlers decode and validate request bodies, read the
// caller's identity from the request context, call the services and map
// service errors to status codes and safe messages.
package api
