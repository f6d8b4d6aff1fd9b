package models

import "time"

// Commit is a single commit fetched from the GitHub API. Commits are
// read fresh on every report request and never persisted.
type Commit struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	AuthorDate  time.Time `json:"author_date"`
	Repository  string    `json:"repository"`
	URL         string    `json:"html_url"`
}
