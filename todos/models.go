// Package todos owns the per-user task list: CRUD, the completion toggle with its
// reward counter, and the stars/level tally computed from completed tasks.
// Every operation takes the caller's user id from a verified auth.Principal and
// scopes storage access by it.
package todos

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when the todo does not exist or belongs to another user.
	ErrNotFound = errors.New("todo not found")
	// ErrInvalidTodo marks rejected create input.
	ErrInvalidTodo = errors.New("invalid todo")
)

// Priority of a todo. The zero value is treated as PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority accepts the three priority names; an empty string means Medium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidTodo, s)
	}
}

// Weight is the number of stars a completed todo of this priority is worth
// when it has no recorded reward.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Todo is a single task owned by one user.
type Todo struct {
	ID          int64     `json:"todo_id" db:"todo_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Text        string    `json:"text" db:"text"`
	Description string    `json:"description" db:"description"`
	Priority    Priority  `json:"priority" db:"priority"`
	Completed   bool      `json:"completed" db:"completed"`
	Reward      int       `json:"reward" db:"reward"` // incremented on every transition to completed
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Stats is the gamification summary of a user's list.
type Stats struct {
	Stars     int `json:"stars"`
	Level     int `json:"level"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Status filters a listing by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ListFilter narrows GET /todos. Search matches text or description, case-insensitively.
type ListFilter struct {
	Search string
	Status Status
}
