package model

import "time"

// Job is one analysis run initiated by a user, optionally tied to one
// uploaded file. Immutable after creation.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	// FileID is nullable: a job may be created standalone.
	FileID    *string   `json:"file_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UnknownLabel is substituted in job listings when a joined file or user
// row no longer resolves. A dangling reference is tolerated, not an error.
const UnknownLabel = "Unknown"

// JobSummary is a job joined with display fields of its file and owner for
// history views. FileName and UserName fall back to UnknownLabel when the
// referenced row is missing.
type JobSummary struct {
	Job
	FileName  string `json:"file_name"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
