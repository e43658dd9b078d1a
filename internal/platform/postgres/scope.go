package postgres

import (
	"fmt"
	"strings"
)

// ownershipScope describes how one entity's rows reach the owning user.
// Only projects persist an owner; tasks and comments join their way up.
type ownershipScope struct {
	// from is the FROM clause: the entity table, the joins up to projects,
	// and any joins needed for read-time projections.
	from string
	// ownerColumn is the qualified column compared against the caller's id.
	ownerColumn string
}

var (
	projectScope = ownershipScope{
		from:        "projects p JOIN users u ON u.id = p.owner_id",
		ownerColumn: "p.owner_id",
	}
	taskScope = ownershipScope{
		from: "tasks t JOIN projects p ON p.id = t.project_id " +
			"LEFT JOIN users a ON a.id = t.assigned_user_id",
		ownerColumn: "p.owner_id",
	}
	commentScope = ownershipScope{
		from: "comments c JOIN tasks t ON t.id = c.task_id " +
			"JOIN projects p ON p.id = t.project_id " +
			"JOIN users u ON u.id = c.author_id",
		ownerColumn: "p.owner_id",
	}
)

// scopedQuery accumulates WHERE conditions on top of the owner predicate.
// Conditions use ? for their argument; every ? in one condition refers to
// the same argument.
type scopedQuery struct {
	scope ownershipScope
	conds []string
	args  []any
}

// forOwner starts a query that only sees rows owned by ownerID. An id of 0
// (unauthenticated caller) matches nothing because ids start at 1.
func (s ownershipScope) forOwner(ownerID int64) *scopedQuery {
	q := &scopedQuery{scope: s}
	return q.where(s.ownerColumn+" = ?", ownerID)
}

func (q *scopedQuery) where(cond string, arg any) *scopedQuery {
	q.args = append(q.args, arg)
	placeholder := fmt.Sprintf("$%d", len(q.args))
	q.conds = append(q.conds, strings.ReplaceAll(cond, "?", placeholder))
	return q
}

// build renders the SELECT statement and its arguments.
func (q *scopedQuery) build(columns, orderBy string) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM ")
	b.WriteString(q.scope.from)
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(q.conds, " AND "))
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}
	return b.String(), q.args
}
