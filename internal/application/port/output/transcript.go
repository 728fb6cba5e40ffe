package output

import "agenda-agent/internal/domain/entity"

// TranscriptPort is the append-only audit trail. It is write-only: nothing
// in the workflow reads it back.
type TranscriptPort interface {
	AppendTaskResult(task entity.Task, result string) error
	AppendTaskList(rendered string) error
}
