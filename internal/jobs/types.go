// Package jobs runs delegating plan generation in the background on asynq.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/briangreenhill/workoutplanner/internal/planner"
)

const (
	TaskLLMPlan = "plan:llm"
	QueueLLM    = "llm"
	// MaxRetry bounds attempts for transient provider failures.
	MaxRetry = 3
)

type LLMPlanPayload struct {
	Request planner.Request `json:"request"`
}

// NewLLMPlanTask encodes req as a plan:llm task.
func NewLLMPlanTask(req planner.Request, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(LLMPlanPayload{Request: req})
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", TaskLLMPlan, err)
	}
	return asynq.NewTask(TaskLLMPlan, payload, opts...), nil
}
