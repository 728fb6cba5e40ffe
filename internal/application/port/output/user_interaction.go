package output

import (
	"context"

	"agenda-agent/internal/domain/entity"
)

type UserInteractionPort interface {
	// GetFeedback blocks for operator input. An empty string is a valid
	// "no feedback" response.
	GetFeedback(ctx context.Context) (string, error)

	// ShowTaskList renders the agenda with per-task status.
	ShowTaskList(ctx context.Context, objective string, tasks []entity.Task)

	// ShowResult renders one titled result block (summary, execution
	// output, status, selected action).
	ShowResult(ctx context.Context, title, body string)
}
