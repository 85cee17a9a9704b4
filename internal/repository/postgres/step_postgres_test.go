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

var stepColumns = []string{"id", "step_name", "params", "job_id", "created_at"}

func TestStepPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStepPostgres(db)

	now := time.Now().UTC()
	jobID := "job-uuid"
	params := []byte(`{"min-length":"1200","verbose":true}`)
	s := &model.PipelineStep{
		ID:        "step-uuid",
		StepName:  "filter",
		Params:    params,
		JobID:     &jobID,
		CreatedAt: now,
	}

	rows := sqlmock.NewRows(stepColumns).
		AddRow(s.ID, s.StepName, params, s.JobID, s.CreatedAt)

	mock.ExpectQuery("INSERT INTO pipeline_steps").
		WithArgs(s.ID, s.StepName, []byte(s.Params), s.JobID, s.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(context.Background(), s)

	assert.NoError(t, err)
	assert.Equal(t, "filter", result.StepName)
	assert.JSONEq(t, string(params), string(result.Params))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStepPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStepPostgres(db)
	ctx := context.Background()

	t.Run("found without job", func(t *testing.T) {
		rows := sqlmock.NewRows(stepColumns).
			AddRow("step-uuid", "blast", []byte(`{}`), nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM pipeline_steps WHERE id = ?").
			WithArgs("step-uuid").
			WillReturnRows(rows)

		s, err := repo.FindByID(ctx, "step-uuid")

		assert.NoError(t, err)
		assert.Nil(t, s.JobID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM pipeline_steps WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		s, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, s)
	})
}
