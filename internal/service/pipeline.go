package service

import (
	"context"
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
	ErrCommandRequired   = errors.New("command is required")
	ErrCommandNotAllowed = errors.New("command is not in the allow-list")
)

// FallbackOutput is returned when a step succeeds without writing anything
// to standard output.
const FallbackOutput = "Step completed with no output"

// RunStepInput is one dispatch request: a command (tool name, optionally
// with a subcommand), its ordered parameters, and an optional owning job.
type RunStepInput struct {
	Command string
	Args    pipeline.Args
	JobID   string
}

// RunStepResult reports a finished dispatch.
type RunStepResult struct {
	Output      string              `json:"output"`
	CommandLine string              `json:"command_line"`
	Step        *model.PipelineStep `json:"step"`
}

// PipelineService dispatches external pipeline tool invocations.
type PipelineService interface {
	// RunStep validates the command, persists the step record, then runs
	// the tool and returns its captured output.
	//
	// The step row is written before execution and is never rolled back, so
	// a failed run still leaves its audit record. Execution blocks the
	// caller until the process exits; there is no timeout, retry, or
	// ordering enforcement between steps.
	RunStep(ctx context.Context, in RunStepInput) (*RunStepResult, error)

	// AllowedCommands lists the tool names the dispatcher will run.
	AllowedCommands() []string
}

type pipelineService struct {
	steps     repository.StepRepository
	runner    pipeline.Runner
	allowlist pipeline.Allowlist
}

// NewPipelineService constructs a PipelineService.
func NewPipelineService(steps repository.StepRepository, runner pipeline.Runner, allowlist pipeline.Allowlist) PipelineService {
	return &pipelineService{steps: steps, runner: runner, allowlist: allowlist}
}

func (s *pipelineService) RunStep(ctx context.Context, in RunStepInput) (*RunStepResult, error) {
	if strings.TrimSpace(in.Command) == "" {
		return nil, ErrCommandRequired
	}
	if !s.allowlist.Allows(in.Command) {
		return nil, ErrCommandNotAllowed
	}

	params, err := json.Marshal(in.Args)
	if err != nil {
		return nil, fmt.Errorf("encode step params: %w", err)
	}
	step := &model.PipelineStep{
		ID:        uuid.New().String(),
		StepName:  in.Command,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}
	if in.JobID != "" {
		step.JobID = &in.JobID
	}
	stored, err := s.steps.Create(ctx, step)
	if err != nil {
		return nil, fmt.Errorf("record step: %w", err)
	}

	argv := pipeline.Argv(in.Command, in.Args)
	res, err := s.runner.Run(ctx, argv)
	if err != nil {
		// The audit row stays; only the outcome is reported.
		return nil, err
	}

	output := res.Stdout
	if strings.TrimSpace(output) == "" {
		output = FallbackOutput
	}
	return &RunStepResult{
		Output:      output,
		CommandLine: pipeline.CommandLine(in.Command, in.Args),
		Step:        stored,
	}, nil
}

func (s *pipelineService) AllowedCommands() []string {
	return s.allowlist.Names()
}
