package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"

	"github.com/jmoiron/sqlx"
)

// TodoRepository scopes every statement by the owning user id.
type TodoRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, userID, todoID string, upd TodoUpdate, now time.Time) (*model.Todo, error)
	SetCompleted(ctx context.Context, userID, todoID string, completed *bool, now time.Time) (*model.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
	Stats(ctx context.Context, userID string, now time.Time) (*model.TodoStats, error)
}

// TodoUpdate carries the editable fields of a full update.
type TodoUpdate struct {
	Title       string
	Description *string
	ScheduledAt time.Time
}

const todoColumns = `id, user_id, title, description, scheduled_at, completed, completed_at, created_at, updated_at`

type pgTodoRepository struct {
	db *sqlx.DB
}

func NewPgTodoRepository(db *sqlx.DB) TodoRepository {
	return &pgTodoRepository{db: db}
}

func (r *pgTodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	todos := []model.Todo{}
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("pgTodoRepository.ListByUser: %w", err)
	}
	return todos, nil
}

func (r *pgTodoRepository) Create(ctx context.Context, t *model.Todo) error {
	query := `INSERT INTO todos (id, user_id, title, description, scheduled_at, completed, completed_at, created_at, updated_at)
	          VALUES (:id, :user_id, :title, :description, :scheduled_at, :completed, :completed_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("pgTodoRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTodoRepository) Update(ctx context.Context, userID, todoID string, upd TodoUpdate, now time.Time) (*model.Todo, error) {
	query := `UPDATE todos SET title = $1, description = $2, scheduled_at = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6
	          RETURNING ` + todoColumns
	todo := &model.Todo{}
	if err := r.db.GetContext(ctx, todo, query, upd.Title, upd.Description, upd.ScheduledAt, now, todoID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.Update: %w", err)
	}
	return todo, nil
}

// SetCompleted stamps completed_at with now when completing and clears it
// when reopening. A nil completed only touches updated_at.
func (r *pgTodoRepository) SetCompleted(ctx context.Context, userID, todoID string, completed *bool, now time.Time) (*model.Todo, error) {
	var (
		query string
		args  []interface{}
	)
	switch {
	case completed == nil:
		query = `UPDATE todos SET updated_at = $1 WHERE id = $2 AND user_id = $3 RETURNING ` + todoColumns
		args = []interface{}{now, todoID, userID}
	case *completed:
		query = `UPDATE todos SET completed = TRUE, completed_at = $1, updated_at = $1
		         WHERE id = $2 AND user_id = $3 RETURNING ` + todoColumns
		args = []interface{}{now, todoID, userID}
	default:
		query = `UPDATE todos SET completed = FALSE, completed_at = NULL, updated_at = $1
		         WHERE id = $2 AND user_id = $3 RETURNING ` + todoColumns
		args = []interface{}{now, todoID, userID}
	}

	todo := &model.Todo{}
	if err := r.db.GetContext(ctx, todo, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.SetCompleted: %w", err)
	}
	return todo, nil
}

func (r *pgTodoRepository) Delete(ctx context.Context, userID, todoID string) error {
	var deletedID string
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING id`
	if err := r.db.GetContext(ctx, &deletedID, query, todoID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgTodoRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgTodoRepository) Stats(ctx context.Context, userID string, now time.Time) (*model.TodoStats, error) {
	query := `SELECT COUNT(*) AS total_todos,
	                 COUNT(*) FILTER (WHERE completed) AS completed_todos,
	                 COUNT(*) FILTER (WHERE NOT completed AND scheduled_at >= $2) AS upcoming_todos
	          FROM todos WHERE user_id = $1`
	stats := &model.TodoStats{}
	if err := r.db.GetContext(ctx, stats, query, userID, now); err != nil {
		return nil, fmt.Errorf("pgTodoRepository.Stats: %w", err)
	}
	return stats, nil
}
