package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"labpipe/internal/model"
)

var fileTestColumns = []string{
	"id", "original_name", "content_type", "size", "storage_path",
	"metadata_path", "place", "captured_at", "weather", "created_at",
}

func TestFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	captured := now.Add(-time.Hour)
	f := &model.File{
		ID:           "file-uuid",
		OriginalName: "sample.pod5",
		ContentType:  "application/octet-stream",
		Size:         2048,
		StoragePath:  "uploads/file-uuid.pod5",
		MetadataPath: "uploads/meta-uuid.csv",
		Place:        "mangrove site 3",
		CapturedAt:   &captured,
		Weather:      "overcast",
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows(fileTestColumns).
		AddRow(f.ID, f.OriginalName, f.ContentType, f.Size, f.StoragePath,
			f.MetadataPath, f.Place, f.CapturedAt, f.Weather, f.CreatedAt)

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(f.ID, f.OriginalName, f.ContentType, f.Size, f.StoragePath,
			f.MetadataPath, f.Place, f.CapturedAt, f.Weather, f.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, f)

	assert.NoError(t, err)
	assert.Equal(t, f.StoragePath, result.StoragePath)
	assert.NotNil(t, result.CapturedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("found with null captured_at", func(t *testing.T) {
		rows := sqlmock.NewRows(fileTestColumns).
			AddRow("file-uuid", "sample.pod5", "application/octet-stream", 2048,
				"uploads/file-uuid.pod5", "", "", nil, "", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("file-uuid").
			WillReturnRows(rows)

		f, err := repo.FindByID(ctx, "file-uuid")

		assert.NoError(t, err)
		assert.Nil(t, f.CapturedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		f, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, f)
	})
}

func TestFilePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)

	rows := sqlmock.NewRows(fileTestColumns).
		AddRow("file-2", "b.pod5", "application/octet-stream", 10, "uploads/b.pod5", "", "", nil, "", time.Now()).
		AddRow("file-1", "a.pod5", "application/octet-stream", 10, "uploads/a.pod5", "", "", nil, "", time.Now().Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM files ORDER BY created_at DESC").
		WillReturnRows(rows)

	files, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, "file-2", files[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
