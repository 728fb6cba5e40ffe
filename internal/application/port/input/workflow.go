package input

import "context"

// WorkflowRunner drives the agenda loop until the queue is exhausted or the
// context is canceled.
type WorkflowRunner interface {
	Run(ctx context.Context) error
}
