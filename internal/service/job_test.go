package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labpipe/internal/model"
	"labpipe/internal/pipeline"
	repoMocks "labpipe/internal/repository/mocks"
)

func echoJob(ctx context.Context, j *model.Job) *model.Job { return j }

func echoStep(ctx context.Context, s *model.PipelineStep) *model.PipelineStep { return s }

func decodeArgs(t *testing.T, raw string) pipeline.Args {
	t.Helper()
	var args pipeline.Args
	require.NoError(t, json.Unmarshal([]byte(raw), &args))
	return args
}

func TestJobService_CreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mJobs := new(repoMocks.MockJobRepository)
		mJobs.On("Create", ctx, mock.MatchedBy(func(j *model.Job) bool {
			return j.ID != "" && j.Title == "16S run 42" && j.UserID == "user-id" &&
				j.FileID != nil && *j.FileID == "file-id"
		})).Return(echoJob, nil)
		svc := NewJobService(mJobs, new(repoMocks.MockStepRepository))

		job, err := svc.CreateJob(ctx, "user-id", "file-id", "16S run 42", "demo")
		require.NoError(t, err)
		assert.Equal(t, "16S run 42", job.Title)
		mJobs.AssertExpectations(t)
	})

	t.Run("default title", func(t *testing.T) {
		mJobs := new(repoMocks.MockJobRepository)
		mJobs.On("Create", ctx, mock.MatchedBy(func(j *model.Job) bool {
			return j.Title == "Analysis run"
		})).Return(echoJob, nil)
		svc := NewJobService(mJobs, new(repoMocks.MockStepRepository))

		_, err := svc.CreateJob(ctx, "user-id", "file-id", "  ", "")
		require.NoError(t, err)
	})

	t.Run("file id required", func(t *testing.T) {
		svc := NewJobService(new(repoMocks.MockJobRepository), new(repoMocks.MockStepRepository))
		_, err := svc.CreateJob(ctx, "user-id", "", "title", "")
		assert.ErrorIs(t, err, ErrFileIDRequired)
	})
}

func TestJobService_StartOrContinuePipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("existing job appends a step", func(t *testing.T) {
		mJobs := new(repoMocks.MockJobRepository)
		mSteps := new(repoMocks.MockStepRepository)
		mSteps.On("Create", ctx, mock.MatchedBy(func(s *model.PipelineStep) bool {
			return s.StepName == "filter" && s.JobID != nil && *s.JobID == "job-id"
		})).Return(echoStep, nil)
		svc := NewJobService(mJobs, mSteps)

		res, err := svc.StartOrContinuePipeline(ctx, "user-id", "filter",
			decodeArgs(t, `{"min-length":"1200"}`), "job-id", "")

		require.NoError(t, err)
		assert.Equal(t, "job-id", res.JobID)
		assert.JSONEq(t, `{"min-length":"1200"}`, string(res.Step.Params))
		mJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mSteps.AssertExpectations(t)
	})

	t.Run("missing job id creates a job named after the step", func(t *testing.T) {
		mJobs := new(repoMocks.MockJobRepository)
		mJobs.On("Create", ctx, mock.MatchedBy(func(j *model.Job) bool {
			return j.Title == "basecall" && j.FileID != nil && *j.FileID == "file-id"
		})).Return(echoJob, nil)
		mSteps := new(repoMocks.MockStepRepository)
		mSteps.On("Create", ctx, mock.Anything).Return(echoStep, nil)
		svc := NewJobService(mJobs, mSteps)

		res, err := svc.StartOrContinuePipeline(ctx, "user-id", "basecall", nil, "", "file-id")
		require.NoError(t, err)
		assert.NotEmpty(t, res.JobID)
		assert.Equal(t, res.JobID, *res.Step.JobID)
	})

	t.Run("missing job id and file id fails", func(t *testing.T) {
		svc := NewJobService(new(repoMocks.MockJobRepository), new(repoMocks.MockStepRepository))
		_, err := svc.StartOrContinuePipeline(ctx, "user-id", "basecall", nil, "", "")
		assert.ErrorIs(t, err, ErrFileIDRequired)
	})

	t.Run("missing step name fails", func(t *testing.T) {
		svc := NewJobService(new(repoMocks.MockJobRepository), new(repoMocks.MockStepRepository))
		_, err := svc.StartOrContinuePipeline(ctx, "user-id", " ", nil, "job-id", "")
		assert.ErrorIs(t, err, ErrStepNameRequired)
	})

	t.Run("repeated identical calls append duplicate records", func(t *testing.T) {
		mJobs := new(repoMocks.MockJobRepository)
		mJobs.On("Create", ctx, mock.Anything).Return(echoJob, nil).Twice()
		mSteps := new(repoMocks.MockStepRepository)
		mSteps.On("Create", ctx, mock.Anything).Return(echoStep, nil).Twice()
		svc := NewJobService(mJobs, mSteps)

		first, err := svc.StartOrContinuePipeline(ctx, "user-id", "demux", nil, "", "file-id")
		require.NoError(t, err)
		second, err := svc.StartOrContinuePipeline(ctx, "user-id", "demux", nil, "", "file-id")
		require.NoError(t, err)

		assert.NotEqual(t, first.JobID, second.JobID)
		assert.NotEqual(t, first.Step.ID, second.Step.ID)
		mJobs.AssertExpectations(t)
		mSteps.AssertExpectations(t)
	})
}

func TestJobService_GetStep(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mSteps := new(repoMocks.MockStepRepository)
		mSteps.On("FindByID", ctx, "step-id").Return(&model.PipelineStep{ID: "step-id"}, nil)
		svc := NewJobService(new(repoMocks.MockJobRepository), mSteps)

		step, err := svc.GetStep(ctx, "step-id")
		require.NoError(t, err)
		assert.Equal(t, "step-id", step.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mSteps := new(repoMocks.MockStepRepository)
		mSteps.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := NewJobService(new(repoMocks.MockJobRepository), mSteps)

		_, err := svc.GetStep(ctx, "missing")
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestJobService_Listings(t *testing.T) {
	ctx := context.Background()
	summaries := []model.JobSummary{
		{Job: model.Job{ID: "job-1"}, FileName: "sample.pod5", UserName: "Ana Souza", UserEmail: "ana@lab.example"},
		{Job: model.Job{ID: "job-2"}, FileName: model.UnknownLabel, UserName: model.UnknownLabel, UserEmail: model.UnknownLabel},
	}

	mJobs := new(repoMocks.MockJobRepository)
	mJobs.On("ListByUser", ctx, "user-id").Return(summaries, nil)
	mJobs.On("ListAll", ctx).Return(summaries, nil)
	svc := NewJobService(mJobs, new(repoMocks.MockStepRepository))

	mine, err := svc.ListJobsForUser(ctx, "user-id")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListAllJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UnknownLabel, all[1].FileName)
}
