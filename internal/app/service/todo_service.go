package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errTodoNotFound = common.NewError(common.ErrNotFound, "Todo not found")

// StatsCache keeps dashboard counters between requests.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*model.TodoStats, error)
	Set(ctx context.Context, userID string, stats *model.TodoStats) error
	Invalidate(ctx context.Context, userID string) error
}

type TodoService struct {
	todoRepo repository.TodoRepository
	stats    StatsCache
	clock    clock.Clock
}

// NewTodoService accepts a nil stats cache.
func NewTodoService(todoRepo repository.TodoRepository, stats StatsCache, clk clock.Clock) *TodoService {
	return &TodoService{todoRepo: todoRepo, stats: stats, clock: clk}
}

// TodoInput is the body of a create or full update.
type TodoInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ScheduledAt string  `json:"scheduledAt"`
}

// TodoPatch carries the optional fields of a partial update. A nil field was
// absent from the request.
type TodoPatch struct {
	Completed *bool `json:"completed"`
}

// UnmarshalJSON treats a completed value that is not a boolean as absent.
// The body itself must still be a JSON object.
func (p *TodoPatch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	p.Completed = nil
	if raw, ok := fields["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err == nil && string(raw) != "null" {
			p.Completed = &completed
		}
	}
	return nil
}

// Accepted scheduledAt layouts. The zone-less forms come from
// <input type="datetime-local"> and are read as UTC.
var scheduledAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseScheduledAt(raw string) (time.Time, error) {
	for _, layout := range scheduledAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.Validationf("Scheduled date/time is invalid")
}

type validTodo struct {
	title       string
	description *string
	scheduledAt time.Time
}

// validate enforces the create/update rules against now. scheduledAt must be
// strictly after now.
func (in TodoInput) validate(now time.Time) (*validTodo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.Validationf("Title is required")
	}
	raw := strings.TrimSpace(in.ScheduledAt)
	if raw == "" {
		return nil, common.Validationf("Scheduled date/time is required")
	}
	scheduledAt, err := parseScheduledAt(raw)
	if err != nil {
		return nil, err
	}
	if !scheduledAt.After(now) {
		return nil, common.Validationf("Todo must be scheduled for a future date and time")
	}

	var description *string
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			description = &d
		}
	}
	return &validTodo{title: title, description: description, scheduledAt: scheduledAt}, nil
}

func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.todoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, in TodoInput) (*model.Todo, error) {
	now := s.clock.Now()
	v, err := in.validate(now)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       v.title,
		Description: v.description,
		ScheduledAt: v.scheduledAt,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	s.invalidateStats(ctx, userID)
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, in TodoInput) (*model.Todo, error) {
	now := s.clock.Now()
	v, err := in.validate(now)
	if err != nil {
		return nil, err
	}
	todoID, ok := canonicalID(todoID)
	if !ok {
		return nil, errTodoNotFound
	}

	todo, err := s.todoRepo.Update(ctx, userID, todoID, repository.TodoUpdate{
		Title:       v.title,
		Description: v.description,
		ScheduledAt: v.scheduledAt,
	}, now)
	if err != nil {
		return nil, todoError("updating todo", err)
	}
	s.invalidateStats(ctx, userID)
	return todo, nil
}

// Patch applies a partial update. Completing stamps completed_at with the
// same instant as updated_at; reopening clears it.
func (s *TodoService) Patch(ctx context.Context, userID, todoID string, patch TodoPatch) (*model.Todo, error) {
	todoID, ok := canonicalID(todoID)
	if !ok {
		return nil, errTodoNotFound
	}
	todo, err := s.todoRepo.SetCompleted(ctx, userID, todoID, patch.Completed, s.clock.Now())
	if err != nil {
		return nil, todoError("patching todo", err)
	}
	s.invalidateStats(ctx, userID)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	todoID, ok := canonicalID(todoID)
	if !ok {
		return errTodoNotFound
	}
	if err := s.todoRepo.Delete(ctx, userID, todoID); err != nil {
		return todoError("deleting todo", err)
	}
	s.invalidateStats(ctx, userID)
	return nil
}

// Notifications returns the caller's upcoming todos followed by the recently
// completed ones.
func (s *TodoService) Notifications(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.todoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos for notifications: %w", err)
	}
	n := BuildNotifications(todos, s.clock.Now())
	return append(n.Upcoming, n.RecentlyCompleted...), nil
}

func (s *TodoService) invalidateStats(ctx context.Context, userID string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx, userID); err != nil {
		logger.Warn("invalidating stats cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func todoError(op string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return errTodoNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// canonicalID returns id in the lowercase hyphenated form Postgres prints for
// uuid columns. Uppercase, braced and hyphen-less spellings of one uuid all
// map to the same string. ok is false when id is not a uuid at all.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
