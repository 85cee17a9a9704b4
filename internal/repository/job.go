package repository

import (
	"context"

	"labpipe/internal/model"
)

// JobRepository defines data access for analysis jobs.
// Listing joins file and user display fields; a job whose file or user row
// no longer resolves is still listed, with placeholder fields (the join is
// LEFT, dangling references are tolerated by design).
type JobRepository interface {
	// Create inserts a new job row and returns the stored record.
	Create(ctx context.Context, j *model.Job) (*model.Job, error)

	// FindByID returns a job by its id.
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// ListByUser returns the user's jobs joined with file/user summaries,
	// ordered by creation time descending.
	ListByUser(ctx context.Context, userID string) ([]model.JobSummary, error)

	// ListAll returns every job in the same shape and order as ListByUser.
	ListAll(ctx context.Context) ([]model.JobSummary, error)
}

// StepRepository defines data access for pipeline step records.
// Steps are append-only; there is no update or delete.
type StepRepository interface {
	// Create inserts a new step row and returns the stored record.
	Create(ctx context.Context, s *model.PipelineStep) (*model.PipelineStep, error)

	// FindByID returns a step by its id.
	FindByID(ctx context.Context, id string) (*model.PipelineStep, error)
}
