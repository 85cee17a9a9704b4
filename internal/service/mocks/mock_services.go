package mocks

import (
	"context"

	"labpipe/internal/model"
	"labpipe/internal/pipeline"
	"labpipe/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, in service.SignupInput) (*model.User, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Profile(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, in service.UploadInput) (*model.File, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context) ([]model.File, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) CreateJob(ctx context.Context, userID, fileID, title, description string) (*model.Job, error) {
	args := m.Called(ctx, userID, fileID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobService) StartOrContinuePipeline(ctx context.Context, userID, stepName string, config pipeline.Args, jobID, fileID string) (*service.StartResult, error) {
	args := m.Called(ctx, userID, stepName, config, jobID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StartResult), args.Error(1)
}

func (m *MockJobService) GetStep(ctx context.Context, id string) (*model.PipelineStep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PipelineStep), args.Error(1)
}

func (m *MockJobService) ListJobsForUser(ctx context.Context, userID string) ([]model.JobSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobSummary), args.Error(1)
}

func (m *MockJobService) ListAllJobs(ctx context.Context) ([]model.JobSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobSummary), args.Error(1)
}

type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) RunStep(ctx context.Context, in service.RunStepInput) (*service.RunStepResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RunStepResult), args.Error(1)
}

func (m *MockPipelineService) AllowedCommands() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
