package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"labpipe/internal/model"
	"labpipe/internal/pipeline"
	"labpipe/internal/repository"
)

var (
	ErrFileIDRequired   = errors.New("file_id is required")
	ErrStepNameRequired = errors.New("step_name is required")
	ErrJobNotFound      = errors.New("job not found")
	ErrStepNotFound     = errors.New("pipeline step not found")
)

// StartResult is what StartOrContinuePipeline returns: the resolved job id
// and the step record that was appended.
type StartResult struct {
	JobID string              `json:"job_id"`
	Step  *model.PipelineStep `json:"step"`
}

// JobService defines analysis-run bookkeeping use cases.
type JobService interface {
	// CreateJob persists a job tying the user to an uploaded file.
	CreateJob(ctx context.Context, userID, fileID, title, description string) (*model.Job, error)

	// StartOrContinuePipeline appends exactly one step record under the
	// resolved job, creating the job first when jobID is empty (fileID is
	// then required). Deliberately not idempotent: identical repeated calls
	// append duplicate rows, and duplicate jobs when jobID is absent.
	StartOrContinuePipeline(ctx context.Context, userID, stepName string, config pipeline.Args, jobID, fileID string) (*StartResult, error)

	// GetStep returns one step record by id.
	GetStep(ctx context.Context, id string) (*model.PipelineStep, error)

	// ListJobsForUser returns the caller's jobs with file/user summaries,
	// newest first.
	ListJobsForUser(ctx context.Context, userID string) ([]model.JobSummary, error)

	// ListAllJobs is the administrative history view: same shape, unfiltered.
	ListAllJobs(ctx context.Context) ([]model.JobSummary, error)
}

type jobService struct {
	jobs  repository.JobRepository
	steps repository.StepRepository
}

// NewJobService constructs a JobService.
func NewJobService(jobs repository.JobRepository, steps repository.StepRepository) JobService {
	return &jobService{jobs: jobs, steps: steps}
}

func (s *jobService) CreateJob(ctx context.Context, userID, fileID, title, description string) (*model.Job, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, ErrFileIDRequired
	}
	if strings.TrimSpace(title) == "" {
		title = "Analysis run"
	}
	job := &model.Job{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		UserID:      userID,
		FileID:      &fileID,
		CreatedAt:   time.Now().UTC(),
	}
	return s.jobs.Create(ctx, job)
}

func (s *jobService) StartOrContinuePipeline(ctx context.Context, userID, stepName string, config pipeline.Args, jobID, fileID string) (*StartResult, error) {
	if strings.TrimSpace(stepName) == "" {
		return nil, ErrStepNameRequired
	}
	if jobID == "" {
		// No multi-statement transaction spans the implicit job creation and
		// the step insert; a crash in between leaves a job with zero steps,
		// which is still a valid job.
		job, err := s.CreateJob(ctx, userID, fileID, stepName, "")
		if err != nil {
			return nil, err
		}
		jobID = job.ID
	}

	params, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("encode step params: %w", err)
	}
	step := &model.PipelineStep{
		ID:        uuid.New().String(),
		StepName:  stepName,
		Params:    params,
		JobID:     &jobID,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.steps.Create(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("record step: %w", err)
	}
	return &StartResult{JobID: jobID, Step: stored}, nil
}

func (s *jobService) GetStep(ctx context.Context, id string) (*model.PipelineStep, error) {
	step, err := s.steps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStepNotFound
		}
		return nil, err
	}
	return step, nil
}

func (s *jobService) ListJobsForUser(ctx context.Context, userID string) ([]model.JobSummary, error) {
	return s.jobs.ListByUser(ctx, userID)
}

func (s *jobService) ListAllJobs(ctx context.Context) ([]model.JobSummary, error) {
	return s.jobs.ListAll(ctx)
}
