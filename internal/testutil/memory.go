// Package testutil holds in-memory stand-ins for the Postgres repositories
// and the identity provider, so services and handlers can be tested without
// external processes.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
)

// UserRepo implements repository.UserRepository over a map.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	seq   int

	// Err, when set, is returned by every call.
	Err error
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*model.User)}
}

// Put stores a copy of u, replacing any row with the same id.
func (r *UserRepo) Put(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
}

func (r *UserRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *UserRepo) byEmail(email string) *model.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (r *UserRepo) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, false, r.Err
	}
	if existing := r.byEmail(user.Email); existing != nil {
		cp := *existing
		return &cp, false, nil
	}
	stored := *user
	r.users[stored.ID] = &stored
	cp := stored
	return &cp, true, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u := r.byEmail(email)
	if u == nil {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// Get returns a copy of the stored row.
func (r *UserRepo) Get(id string) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, false
	}
	return *u, true
}

func (r *UserRepo) List(ctx context.Context) ([]model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]model.UserSummary, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.users), nil
}

func (r *UserRepo) UpdateRole(ctx context.Context, id, role string, now time.Time) (*model.RoleChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = now
	return &model.RoleChange{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, name, email string, now time.Time) (*model.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if other := r.byEmail(email); other != nil && other.ID != id {
		return nil, common.NewError(common.ErrConflict, "email already in use")
	}
	u.Name = &name
	u.Email = email
	u.UpdatedAt = now
	summary := u.Summary()
	return &summary, nil
}

func (r *UserRepo) EmailTakenByOther(ctx context.Context, email, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	u := r.byEmail(email)
	return u != nil && u.ID != userID, nil
}

// TodoRepo implements repository.TodoRepository over a map.
type TodoRepo struct {
	mu    sync.Mutex
	todos map[string]*model.Todo

	Err error
}

var _ repository.TodoRepository = (*TodoRepo)(nil)

func NewTodoRepo() *TodoRepo {
	return &TodoRepo{todos: make(map[string]*model.Todo)}
}

func (r *TodoRepo) Put(t model.Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.todos[t.ID] = &t
}

// Get returns a copy of the stored row regardless of owner.
func (r *TodoRepo) Get(id string) (model.Todo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, false
	}
	return *t, true
}

func (r *TodoRepo) owned(userID, todoID string) (*model.Todo, error) {
	t, ok := r.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (r *TodoRepo) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []model.Todo{}
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *t
	r.todos[t.ID] = &cp
	return nil
}

func (r *TodoRepo) Update(ctx context.Context, userID, todoID string, upd repository.TodoUpdate, now time.Time) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, err := r.owned(userID, todoID)
	if err != nil {
		return nil, err
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.ScheduledAt = upd.ScheduledAt
	t.UpdatedAt = now
	cp := *t
	return &cp, nil
}

func (r *TodoRepo) SetCompleted(ctx context.Context, userID, todoID string, completed *bool, now time.Time) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, err := r.owned(userID, todoID)
	if err != nil {
		return nil, err
	}
	if completed != nil {
		t.Completed = *completed
		if *completed {
			at := now
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = now
	cp := *t
	return &cp, nil
}

func (r *TodoRepo) Delete(ctx context.Context, userID, todoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, err := r.owned(userID, todoID); err != nil {
		return err
	}
	delete(r.todos, todoID)
	return nil
}

func (r *TodoRepo) Stats(ctx context.Context, userID string, now time.Time) (*model.TodoStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	stats := &model.TodoStats{}
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		stats.TotalTodos++
		if t.Completed {
			stats.CompletedTodos++
		} else if !t.ScheduledAt.Before(now) {
			stats.UpcomingTodos++
		}
	}
	return stats, nil
}

// PropertyRepo implements repository.PropertyRepository over a map.
type PropertyRepo struct {
	mu     sync.Mutex
	rows   map[int64]*model.Property
	nextID int64

	Err error
}

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

func NewPropertyRepo() *PropertyRepo {
	return &PropertyRepo{rows: make(map[int64]*model.Property)}
}

func (r *PropertyRepo) slugTaken(slug string, exceptID int64) bool {
	for id, p := range r.rows {
		if id != exceptID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.slugTaken(p.Slug, 0) {
		return common.NewError(common.ErrConflict, "property with this slug already exists")
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[p.ID]; !ok {
		return common.ErrNotFound
	}
	if r.slugTaken(p.Slug, p.ID) {
		return common.NewError(common.ErrConflict, "property with this slug already exists")
	}
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *PropertyRepo) FindByID(ctx context.Context, id int64) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PropertyRepo) List(ctx context.Context, limit, offset int, filter model.PropertyFilter) ([]model.Property, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var matched []model.Property
	for _, p := range r.rows {
		if filter.ForSale != nil && p.IsForSale != *filter.ForSale {
			continue
		}
		if filter.PropertyType != "" && (p.PropertyType == nil || *p.PropertyType != filter.PropertyType) {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := []model.Property{}
	for i := offset; i < total && i < offset+limit; i++ {
		page = append(page, matched[i])
	}
	return page, total, nil
}

func matchesSearch(p *model.Property, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	return p.Location != nil && strings.Contains(strings.ToLower(*p.Location), q)
}

func (r *PropertyRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
