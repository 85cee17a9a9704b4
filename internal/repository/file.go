package repository

import (
	"context"

	"labpipe/internal/model"
)

// FileRepository defines data access for uploaded file metadata.
// Rows are created once by the owning upload and read-only thereafter.
type FileRepository interface {
	// Create inserts a new file record and returns the stored row.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByID returns a file by its id.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// List returns all file records, newest first.
	List(ctx context.Context) ([]model.File, error)
}
