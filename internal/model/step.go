package model

import (
	"encoding/json"
	"time"
)

// PipelineStep is one recorded invocation of an external processing stage.
// Step rows are append-only: they are written before the stage executes and
// are never updated or deleted, so failed runs stay visible in history.
type PipelineStep struct {
	ID       string `json:"id"`
	StepName string `json:"step_name"`
	// Params is the raw parameter object exactly as submitted, preserving
	// the caller's key order.
	Params json.RawMessage `json:"params"`
	// JobID is nullable: a step may run untethered to a job.
	JobID     *string   `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
