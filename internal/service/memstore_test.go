package service

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// memDB is an in-memory stand-in for the postgres schema, including its
// ownership filters and ON DELETE rules. Every store built on it shares the
// same rows.
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]domain.User
	projects map[int64]domain.Project
	tasks    map[int64]domain.Task
	comments map[int64]domain.Comment
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[int64]domain.User),
		projects: make(map[int64]domain.Project),
		tasks:    make(map[int64]domain.Task),
		comments: make(map[int64]domain.Comment),
	}
}

func (db *memDB) newID() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) deleteTaskLocked(id int64) {
	delete(db.tasks, id)
	for cid, c := range db.comments {
		if c.TaskID == id {
			delete(db.comments, cid)
		}
	}
}

func (db *memDB) deleteProjectLocked(id int64) {
	delete(db.projects, id)
	for tid, t := range db.tasks {
		if t.ProjectID == id {
			db.deleteTaskLocked(tid)
		}
	}
}

func (db *memDB) taskVisibleLocked(t domain.Task, ownerID int64) bool {
	p, ok := db.projects[t.ProjectID]
	return ok && p.OwnerID == ownerID
}

// memTransactor runs the function without a transaction; the mem stores
// ignore the nil *sql.Tx they receive.
type memTransactor struct {
	calls int
}

func (m *memTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.calls++
	return fn(ctx, nil)
}

type memUserStore struct{ db *memDB }

func (s *memUserStore) WithTx(*sql.Tx) store.UserStore { return s }

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = s.db.newID()
	stored := *user
	stored.Password = ""
	s.db.users[user.ID] = stored
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memUserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) Exists(_ context.Context, id int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, ok := s.db.users[id]
	return ok, nil
}

func (s *memUserStore) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.db.users, id)

	for pid, p := range s.db.projects {
		if p.OwnerID == id {
			s.db.deleteProjectLocked(pid)
		}
	}
	for cid, c := range s.db.comments {
		if c.AuthorID == id {
			delete(s.db.comments, cid)
		}
	}
	for tid, t := range s.db.tasks {
		if t.AssignedUserID != nil && *t.AssignedUserID == id {
			t.AssignedUserID = nil
			s.db.tasks[tid] = t
		}
	}
	return nil
}

type memProjectStore struct{ db *memDB }

func (s *memProjectStore) WithTx(*sql.Tx) store.ProjectStore { return s }

func (s *memProjectStore) detailsLocked(p domain.Project) domain.ProjectDetails {
	count := 0
	for _, t := range s.db.tasks {
		if t.ProjectID == p.ID {
			count++
		}
	}
	return domain.ProjectDetails{
		Project:       p,
		OwnerUsername: s.db.users[p.OwnerID].Username,
		TaskCount:     count,
	}
}

func (s *memProjectStore) List(_ context.Context, ownerID int64, search string) ([]domain.ProjectDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]domain.ProjectDetails, 0)
	for _, id := range slices.Sorted(maps.Keys(s.db.projects)) {
		p := s.db.projects[id]
		if p.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(p.Name, search) && !strings.Contains(p.Description, search) {
			continue
		}
		out = append(out, s.detailsLocked(p))
	}
	return out, nil
}

func (s *memProjectStore) GetByID(_ context.Context, id, ownerID int64) (*domain.ProjectDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, store.ErrProjectNotFound
	}
	d := s.detailsLocked(p)
	return &d, nil
}

func (s *memProjectStore) IsOwnedBy(_ context.Context, id, ownerID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	return ok && p.OwnerID == ownerID, nil
}

func (s *memProjectStore) Create(_ context.Context, project *domain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[project.OwnerID]; !ok {
		return store.ErrInvalidEntity
	}
	project.ID = s.db.newID()
	s.db.projects[project.ID] = *project
	return nil
}

func (s *memProjectStore) Update(_ context.Context, project *domain.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	current, ok := s.db.projects[project.ID]
	if !ok || current.OwnerID != project.OwnerID {
		return store.ErrProjectNotFound
	}
	current.Name = project.Name
	current.Description = project.Description
	s.db.projects[project.ID] = current
	return nil
}

func (s *memProjectStore) Delete(_ context.Context, id, ownerID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	if !ok || p.OwnerID != ownerID {
		return store.ErrProjectNotFound
	}
	s.db.deleteProjectLocked(id)
	return nil
}

type memTaskStore struct{ db *memDB }

func (s *memTaskStore) WithTx(*sql.Tx) store.TaskStore { return s }

func (s *memTaskStore) detailsLocked(t domain.Task) domain.TaskDetails {
	d := domain.TaskDetails{
		Task:        t,
		ProjectName: s.db.projects[t.ProjectID].Name,
	}
	if t.AssignedUserID != nil {
		id := *t.AssignedUserID
		d.AssignedUserID = &id
		if u, ok := s.db.users[id]; ok {
			name := u.Username
			d.AssignedUsername = &name
		}
	}
	for _, c := range s.db.comments {
		if c.TaskID == t.ID {
			d.CommentCount++
		}
	}
	return d
}

func (s *memTaskStore) List(_ context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.TaskDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]domain.TaskDetails, 0)
	for _, id := range slices.Sorted(maps.Keys(s.db.tasks)) {
		t := s.db.tasks[id]
		if !s.db.taskVisibleLocked(t, ownerID) {
			continue
		}
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, s.detailsLocked(t))
	}
	return out, nil
}

func (s *memTaskStore) GetByID(_ context.Context, id, ownerID int64) (*domain.TaskDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tasks[id]
	if !ok || !s.db.taskVisibleLocked(t, ownerID) {
		return nil, store.ErrTaskNotFound
	}
	d := s.detailsLocked(t)
	return &d, nil
}

func (s *memTaskStore) Create(_ context.Context, task *domain.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	task.ID = s.db.newID()
	s.db.tasks[task.ID] = *task
	return nil
}

func (s *memTaskStore) mutate(id, ownerID int64, fn func(*domain.Task)) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tasks[id]
	if !ok || !s.db.taskVisibleLocked(t, ownerID) {
		return store.ErrTaskNotFound
	}
	fn(&t)
	s.db.tasks[id] = t
	return nil
}

func (s *memTaskStore) Update(_ context.Context, task *domain.Task, ownerID int64) error {
	return s.mutate(task.ID, ownerID, func(t *domain.Task) { *t = *task })
}

func (s *memTaskStore) UpdateStatus(_ context.Context, id int64, status domain.TaskStatus, ownerID int64) error {
	return s.mutate(id, ownerID, func(t *domain.Task) { t.Status = status })
}

func (s *memTaskStore) UpdateAssignee(_ context.Context, id int64, assigneeID *int64, ownerID int64) error {
	return s.mutate(id, ownerID, func(t *domain.Task) { t.AssignedUserID = assigneeID })
}

func (s *memTaskStore) Delete(_ context.Context, id, ownerID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tasks[id]
	if !ok || !s.db.taskVisibleLocked(t, ownerID) {
		return store.ErrTaskNotFound
	}
	s.db.deleteTaskLocked(id)
	return nil
}

type memCommentStore struct{ db *memDB }

func (s *memCommentStore) WithTx(*sql.Tx) store.CommentStore { return s }

func (s *memCommentStore) visibleLocked(c domain.Comment, ownerID int64) bool {
	t, ok := s.db.tasks[c.TaskID]
	return ok && s.db.taskVisibleLocked(t, ownerID)
}

func (s *memCommentStore) detailsLocked(c domain.Comment) domain.CommentDetails {
	return domain.CommentDetails{
		Comment:        c,
		TaskTitle:      s.db.tasks[c.TaskID].Title,
		AuthorUsername: s.db.users[c.AuthorID].Username,
	}
}

func (s *memCommentStore) ListByTask(_ context.Context, taskID, ownerID int64) ([]domain.CommentDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]domain.CommentDetails, 0)
	for _, c := range s.db.comments {
		if c.TaskID == taskID && s.visibleLocked(c, ownerID) {
			out = append(out, s.detailsLocked(c))
		}
	}
	slices.SortFunc(out, func(a, b domain.CommentDetails) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

func (s *memCommentStore) GetByID(_ context.Context, id, ownerID int64) (*domain.CommentDetails, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.comments[id]
	if !ok || !s.visibleLocked(c, ownerID) {
		return nil, store.ErrCommentNotFound
	}
	d := s.detailsLocked(c)
	return &d, nil
}

func (s *memCommentStore) Create(_ context.Context, comment *domain.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	comment.ID = s.db.newID()
	s.db.comments[comment.ID] = *comment
	return nil
}

func (s *memCommentStore) UpdateText(_ context.Context, id int64, text string, authorID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.comments[id]
	if !ok || c.AuthorID != authorID {
		return store.ErrCommentNotFound
	}
	c.Text = text
	s.db.comments[id] = c
	return nil
}

func (s *memCommentStore) Delete(_ context.Context, id, authorID int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.comments[id]
	if !ok || c.AuthorID != authorID {
		return store.ErrCommentNotFound
	}
	delete(s.db.comments, id)
	return nil
}

var (
	_ store.UserStore    = (*memUserStore)(nil)
	_ store.ProjectStore = (*memProjectStore)(nil)
	_ store.TaskStore    = (*memTaskStore)(nil)
	_ store.CommentStore = (*memCommentStore)(nil)
	_ store.Transactor   = (*memTransactor)(nil)
)
