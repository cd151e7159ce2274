package jobs

import (
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// ErrNotFound means no job with the ID exists, or its retention has expired.
var ErrNotFound = errors.New("job not found")

// Status is the externally visible state of a plan job.
type Status struct {
	ID          string     `json:"id"`
	State       string     `json:"state"`
	Plan        string     `json:"plan,omitempty"`
	Error       string     `json:"error,omitempty"`
	Retried     int        `json:"retried"`
	MaxRetry    int        `json:"max_retry"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Done reports whether the job reached a terminal state.
func (s *Status) Done() bool {
	return s.State == asynq.TaskStateCompleted.String() || s.State == asynq.TaskStateArchived.String()
}

// Inspector is the subset of *asynq.Inspector used for lookups.
type Inspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// Lookup reads job state from the llm queue.
type Lookup struct {
	inspector Inspector
}

func NewLookup(inspector Inspector) *Lookup {
	return &Lookup{inspector: inspector}
}

func (l *Lookup) Get(id string) (*Status, error) {
	info, err := l.inspector.GetTaskInfo(QueueLLM, id)
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return statusFrom(info), nil
}

func statusFrom(info *asynq.TaskInfo) *Status {
	s := &Status{
		ID:       info.ID,
		State:    info.State.String(),
		Error:    info.LastErr,
		Retried:  info.Retried,
		MaxRetry: info.MaxRetry,
	}
	if info.State == asynq.TaskStateCompleted {
		s.Plan = string(info.Result)
		s.Error = ""
		if !info.CompletedAt.IsZero() {
			at := info.CompletedAt
			s.CompletedAt = &at
		}
	}
	return s
}
