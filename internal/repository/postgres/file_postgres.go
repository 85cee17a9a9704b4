package postgres

import (
	"context"
	"database/sql"

	"labpipe/internal/model"
	"labpipe/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, original_name, content_type, size, storage_path, metadata_path, place, captured_at, weather, created_at`

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (id, original_name, content_type, size, storage_path, metadata_path, place, captured_at, weather, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.OriginalName,
		f.ContentType,
		f.Size,
		f.StoragePath,
		f.MetadataPath,
		f.Place,
		f.CapturedAt,
		f.Weather,
		f.CreatedAt,
	)
	return scanFile(row)
}

// FindByID fetches a single file by its id.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// List returns all files, newest first.
func (r *FilePostgres) List(ctx context.Context) ([]model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(
			&f.ID,
			&f.OriginalName,
			&f.ContentType,
			&f.Size,
			&f.StoragePath,
			&f.MetadataPath,
			&f.Place,
			&f.CapturedAt,
			&f.Weather,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanFile(row *sql.Row) (*model.File, error) {
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.OriginalName,
		&f.ContentType,
		&f.Size,
		&f.StoragePath,
		&f.MetadataPath,
		&f.Place,
		&f.CapturedAt,
		&f.Weather,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}
