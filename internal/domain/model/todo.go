package model

import "time"

type Todo struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	ScheduledAt time.Time  `json:"scheduledAt" db:"scheduled_at"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// TodoStats backs the dashboard counters.
type TodoStats struct {
	TotalTodos     int `json:"totalTodos" db:"total_todos"`
	CompletedTodos int `json:"completedTodos" db:"completed_todos"`
	UpcomingTodos  int `json:"upcomingTodos" db:"upcoming_todos"`
	TotalUsers     int `json:"totalUsers" db:"-"`
}
