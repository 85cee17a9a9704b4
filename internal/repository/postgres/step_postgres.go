package postgres

import (
	"context"
	"database/sql"

	"labpipe/internal/model"
	"labpipe/internal/repository"
)

// StepPostgres is a PostgreSQL implementation of repository.StepRepository.
// Inserts only, plus lookup; step rows are append-only by contract.
type StepPostgres struct {
	db *sql.DB
}

// NewStepPostgres creates a new StepPostgres repository.
func NewStepPostgres(db *sql.DB) *StepPostgres {
	return &StepPostgres{db: db}
}

var _ repository.StepRepository = (*StepPostgres)(nil)

// Create inserts a new pipeline step row and returns the stored record.
func (r *StepPostgres) Create(ctx context.Context, s *model.PipelineStep) (*model.PipelineStep, error) {
	const q = `
		INSERT INTO pipeline_steps (id, step_name, params, job_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, step_name, params, job_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.StepName,
		s.Params,
		s.JobID,
		s.CreatedAt,
	)
	var out model.PipelineStep
	if err := row.Scan(
		&out.ID,
		&out.StepName,
		&out.Params,
		&out.JobID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single step by its id.
func (r *StepPostgres) FindByID(ctx context.Context, id string) (*model.PipelineStep, error) {
	const q = `
		SELECT id, step_name, params, job_id, created_at
		FROM pipeline_steps
		WHERE id = $1
	`
	var s model.PipelineStep
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID,
		&s.StepName,
		&s.Params,
		&s.JobID,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
