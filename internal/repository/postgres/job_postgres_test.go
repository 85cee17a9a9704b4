package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"labpipe/internal/model"
)

var summaryColumns = []string{
	"id", "title", "description", "user_id", "file_id", "created_at",
	"original_name", "full_name", "email",
}

func TestJobPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)

	now := time.Now().UTC()
	fileID := "file-uuid"
	j := &model.Job{
		ID:          "job-uuid",
		Title:       "16S run 42",
		Description: "mangrove sediment batch",
		UserID:      "user-uuid",
		FileID:      &fileID,
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows([]string{"id", "title", "description", "user_id", "file_id", "created_at"}).
		AddRow(j.ID, j.Title, j.Description, j.UserID, j.FileID, j.CreatedAt)

	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(j.ID, j.Title, j.Description, j.UserID, j.FileID, j.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), j)

	assert.NoError(t, err)
	assert.Equal(t, "job-uuid", result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)

	t.Run("joined fields populated", func(t *testing.T) {
		rows := sqlmock.NewRows(summaryColumns).
			AddRow("job-1", "16S run 42", "", "user-uuid", "file-uuid", time.Now(),
				"sample.pod5", "Ana Souza", "ana@lab.example")

		mock.ExpectQuery("SELECT (.+) FROM jobs j").
			WithArgs("user-uuid").
			WillReturnRows(rows)

		jobs, err := repo.ListByUser(context.Background(), "user-uuid")

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, "sample.pod5", jobs[0].FileName)
		assert.Equal(t, "Ana Souza", jobs[0].UserName)
	})

	t.Run("null joins become Unknown", func(t *testing.T) {
		rows := sqlmock.NewRows(summaryColumns).
			AddRow("job-2", "orphan run", "", "user-uuid", nil, time.Now(),
				nil, nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM jobs j").
			WithArgs("user-uuid").
			WillReturnRows(rows)

		jobs, err := repo.ListByUser(context.Background(), "user-uuid")

		assert.NoError(t, err)
		assert.Len(t, jobs, 1)
		assert.Equal(t, model.UnknownLabel, jobs[0].FileName)
		assert.Equal(t, model.UnknownLabel, jobs[0].UserName)
		assert.Equal(t, model.UnknownLabel, jobs[0].UserEmail)
	})
}

func TestJobPostgres_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)

	rows := sqlmock.NewRows(summaryColumns).
		AddRow("job-2", "newer", "", "user-b", nil, time.Now(), nil, "Bruno Lima", "bruno@lab.example").
		AddRow("job-1", "older", "", "user-a", "file-uuid", time.Now().Add(-time.Hour),
			"sample.pod5", "Ana Souza", "ana@lab.example")

	mock.ExpectQuery("SELECT (.+) FROM jobs j").
		WillReturnRows(rows)

	jobs, err := repo.ListAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, "job-2", jobs[0].ID)
	assert.Equal(t, model.UnknownLabel, jobs[0].FileName)
	assert.Equal(t, "sample.pod5", jobs[1].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
