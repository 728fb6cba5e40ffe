package output

import (
	"context"

	"agenda-agent/internal/domain/entity"
)

// ActionSelectorPort is the action-selection collaborator. The threshold
// and result count persist across calls until changed; the frustration
// controller is the sole writer of the threshold.
type ActionSelectorPort interface {
	SetThreshold(threshold float64)
	SetResultCount(n int)

	// Select returns a candidate action for the task, or nil when no
	// action clears the current threshold.
	Select(ctx context.Context, task, feedback string) (*entity.Action, error)
}

// ActionExecutorPort runs a selected action and returns its (possibly
// multi-part) output in order.
type ActionExecutorPort interface {
	Execute(ctx context.Context, task string, action entity.Action, reason string) ([]entity.ActionPart, error)
}
