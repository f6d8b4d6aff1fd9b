package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityStatus is the kanban column a daily activity sits in.
type ActivityStatus string

const (
	ActivityTodo  ActivityStatus = "todo"
	ActivityDoing ActivityStatus = "doing"
	ActivityDone  ActivityStatus = "done"
)

// IsValid reports whether s is one of the known kanban columns.
func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityTodo, ActivityDoing, ActivityDone:
		return true
	}
	return false
}

// DailyActivity is a free-form note tracked on a project's daily board.
type DailyActivity struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"-"`
	Date      time.Time      `json:"date"`
	Content   string         `json:"content"`
	Status    ActivityStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
