package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account created through the GitHub OAuth login.
// AccessToken is the delegated GitHub token used for commit fetches;
// it never leaves the server.
type User struct {
	ID          uuid.UUID `json:"id"`
	GitHubID    int64     `json:"github_id"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatar_url"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
