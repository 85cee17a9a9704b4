package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"labpipe/internal/http/middleware"
	"labpipe/internal/pipeline"
	"labpipe/internal/service"
)

type createJobRequest struct {
	FileID      string `json:"file_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type startPipelineRequest struct {
	StepName string        `json:"step_name"`
	Config   pipeline.Args `json:"config"`
	JobID    string        `json:"job_id"`
	FileID   string        `json:"file_id"`
}

type runStepRequest struct {
	Command string        `json:"command"`
	Args    pipeline.Args `json:"args"`
	JobID   string        `json:"job_id"`
}

// CreateJob starts a new analysis run tied to an uploaded file.
func CreateJob(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createJobRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		}

		job, err := svc.CreateJob(c.UserContext(), middleware.UserID(c), req.FileID, req.Title, req.Description)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
	}
}

// StartPipeline records one pipeline step, creating the owning job first
// when job_id is absent (file_id is then required). Repeating the same
// request appends duplicate records; the call is not idempotent.
func StartPipeline(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req startPipelineRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		}

		res, err := svc.StartOrContinuePipeline(c.UserContext(), middleware.UserID(c), req.StepName, req.Config, req.JobID, req.FileID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetStep returns one pipeline step record by id.
func GetStep(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		step, err := svc.GetStep(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(step)
	}
}

// ListMyJobs returns the caller's jobs with file and user summaries.
func ListMyJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		if userID == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid credentials")
		}
		jobs, err := svc.ListJobsForUser(c.UserContext(), userID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"jobs": jobs})
	}
}

// ListAllJobs is the unfiltered history view.
func ListAllJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobs, err := svc.ListAllJobs(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"jobs": jobs})
	}
}

// RunStep dispatches one external tool invocation and returns its captured
// output. The step record is persisted before execution; a failing tool
// reports 500 with the tool's stderr while the record remains.
func RunStep(svc service.PipelineService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req runStepRequest
		if err := c.BodyParser(&req); err != nil {
			if errors.Is(err, pipeline.ErrNestedValue) {
				return serviceError(c, err)
			}
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		}

		res, err := svc.RunStep(c.UserContext(), service.RunStepInput{
			Command: req.Command,
			Args:    req.Args,
			JobID:   req.JobID,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// ListCommands exposes the allow-listed tool catalog so the frontend can
// render the available stages.
func ListCommands(svc service.PipelineService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"commands": svc.AllowedCommands()})
	}
}
