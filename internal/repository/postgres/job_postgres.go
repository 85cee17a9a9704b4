package postgres

import (
	"context"
	"database/sql"

	"labpipe/internal/model"
	"labpipe/internal/repository"
)

// JobPostgres is a PostgreSQL implementation of repository.JobRepository.
type JobPostgres struct {
	db *sql.DB
}

// NewJobPostgres creates a new JobPostgres repository.
func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobRepository = (*JobPostgres)(nil)

// Create inserts a new job row and returns the stored record.
func (r *JobPostgres) Create(ctx context.Context, j *model.Job) (*model.Job, error) {
	const q = `
		INSERT INTO jobs (id, title, description, user_id, file_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, user_id, file_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		j.ID,
		j.Title,
		j.Description,
		j.UserID,
		j.FileID,
		j.CreatedAt,
	)
	var out model.Job
	if err := row.Scan(
		&out.ID,
		&out.Title,
		&out.Description,
		&out.UserID,
		&out.FileID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single job by its id.
func (r *JobPostgres) FindByID(ctx context.Context, id string) (*model.Job, error) {
	const q = `
		SELECT id, title, description, user_id, file_id, created_at
		FROM jobs
		WHERE id = $1
	`
	var j model.Job
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.UserID,
		&j.FileID,
		&j.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}

// summaryQuery joins file and user display fields. LEFT JOINs: a job whose
// file or user no longer resolves is still returned, with NULLs the scan
// turns into placeholders.
const summaryQuery = `
	SELECT j.id, j.title, j.description, j.user_id, j.file_id, j.created_at,
	       f.original_name, u.full_name, u.email
	FROM jobs j
	LEFT JOIN files f ON f.id = j.file_id
	LEFT JOIN users u ON u.id = j.user_id
`

// ListByUser returns the user's jobs with file/user summaries, newest first.
func (r *JobPostgres) ListByUser(ctx context.Context, userID string) ([]model.JobSummary, error) {
	q := summaryQuery + `
	WHERE j.user_id = $1
	ORDER BY j.created_at DESC, j.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// ListAll returns every job with file/user summaries, newest first.
func (r *JobPostgres) ListAll(ctx context.Context) ([]model.JobSummary, error) {
	q := summaryQuery + `
	ORDER BY j.created_at DESC, j.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]model.JobSummary, error) {
	items := make([]model.JobSummary, 0)
	for rows.Next() {
		var (
			s         model.JobSummary
			fileName  sql.NullString
			userName  sql.NullString
			userEmail sql.NullString
		)
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.UserID,
			&s.FileID,
			&s.CreatedAt,
			&fileName,
			&userName,
			&userEmail,
		); err != nil {
			return nil, err
		}
		s.FileName = orUnknown(fileName)
		s.UserName = orUnknown(userName)
		s.UserEmail = orUnknown(userEmail)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func orUnknown(v sql.NullString) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return model.UnknownLabel
}
