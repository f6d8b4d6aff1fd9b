package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Project groups one or more GitHub repositories under a single work log.
type Project struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"-"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Repositories []Repository `json:"repositories"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Repository is a GitHub repository attached to a project.
type Repository struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"-"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
}

// FullName returns the owner/name form used in GitHub API paths.
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}
