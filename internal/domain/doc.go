// Package domain defines users, projects, tasks and comments together with
// their field validation and the task status enumeration. It has no
// knowledge of storage or HTTP.
package domain
