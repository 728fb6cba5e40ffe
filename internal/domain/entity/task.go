package entity

type TaskStatus string

const (
	TaskStatusNotCompleted TaskStatus = "not completed"
	TaskStatusCompleted    TaskStatus = "completed"
)

// Task is one entry of the agenda. Order is 1-based and totally orders a
// queue snapshot; ListID identifies the (re)planning generation the task
// belongs to.
type Task struct {
	ID          string
	Description string
	Status      TaskStatus
	Order       int
	ListID      string
}

// ExecutionResult captures one iteration's work, whichever dispatch path
// produced it. It is never persisted as-is; only the status derived from it
// is written back onto the task.
type ExecutionResult struct {
	TaskResult string
	Task       Task
	Context    string
	Order      int
}

// StatusResult is the structured outcome of evaluating an execution report.
// Reason is transient feedback for the next iteration and is not persisted.
type StatusResult struct {
	Task   Task
	Status TaskStatus
	Reason string
}

// Empty reports whether the evaluator failed to produce a usable status.
// Callers must treat an empty result as unknown and skip persistence.
func (r StatusResult) Empty() bool {
	return r.Status == ""
}
