package agent

import (
	"fmt"
	"time"
)

type TaskState string

const (
	TaskStateCreated   TaskState = "created"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed
}

// validTransitions is the full lifecycle: created → working → {completed,
// failed}. Strictly forward, no state is ever revisited.
var validTransitions = map[TaskState][]TaskState{
	TaskStateCreated: {TaskStateWorking},
	TaskStateWorking: {TaskStateCompleted, TaskStateFailed},
}

// Task is one protocol request's execution. Mutated only through
// Transition; immutable once terminal.
type Task struct {
	ID          string
	ContextID   string
	State       TaskState
	Input       Message
	Result      *Message
	Artifacts   []Artifact
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func NewTask(id, contextID string, input Message) *Task {
	return &Task{
		ID:        id,
		ContextID: contextID,
		State:     TaskStateCreated,
		Input:     input,
		CreatedAt: time.Now().UTC(),
	}
}

// Transition advances the task to next, rejecting anything the lifecycle
// does not allow. Terminal states are final.
func (t *Task) Transition(next TaskState) error {
	if t.State.Terminal() {
		return fmt.Errorf("task %s is terminal in state %q", t.ID, t.State)
	}
	for _, allowed := range validTransitions[t.State] {
		if allowed == next {
			t.State = next
			if next.Terminal() {
				now := time.Now().UTC()
				t.CompletedAt = &now
			}
			return nil
		}
	}
	return fmt.Errorf("invalid task transition %q -> %q", t.State, next)
}

// Complete marks the task done with its composed result and artifacts.
func (t *Task) Complete(result Message, artifacts []Artifact) error {
	if err := t.Transition(TaskStateCompleted); err != nil {
		return err
	}
	t.Result = &result
	t.Artifacts = artifacts
	return nil
}

// Fail marks the task failed, carrying a descriptive agent message rather
// than a protocol-level error.
func (t *Task) Fail(result Message) error {
	if err := t.Transition(TaskStateFailed); err != nil {
		return err
	}
	t.Result = &result
	return nil
}
