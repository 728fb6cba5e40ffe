package dispatch

import (
	"context"
	"strings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

// DirectExecutor is the direct-execution fallback path.
type DirectExecutor interface {
	Execute(ctx context.Context, req ExecuteRequest) (string, error)
}

// ExecuteRequest carries everything the direct-execution agent needs for
// one iteration.
type ExecuteRequest struct {
	Objective string
	Task      string
	Summary   string
	Context   string
	Feedback  string
}

type Config struct {
	// RunFallbackAfterAction keeps the revision where a selected action
	// does not short-circuit direct execution: both paths run in the same
	// iteration. Set false for the earlier mutually-exclusive behavior.
	RunFallbackAfterAction bool

	// ResultCount is the fixed candidate-set size handed to the action
	// selector.
	ResultCount int
}

func DefaultConfig() Config {
	return Config{
		RunFallbackAfterAction: true,
		ResultCount:            10,
	}
}

// Policy chooses, per iteration, between the action path and the
// direct-execution fallback. Both paths populate the same ExecutionResult
// shape so the status evaluator is agnostic to which one ran.
type Policy struct {
	selector output.ActionSelectorPort
	executor output.ActionExecutorPort
	direct   DirectExecutor
	logger   output.LoggerPort
	cfg      Config
}

func New(
	selector output.ActionSelectorPort,
	executor output.ActionExecutorPort,
	direct DirectExecutor,
	logger output.LoggerPort,
	cfg Config,
) *Policy {
	selector.SetResultCount(cfg.ResultCount)
	return &Policy{
		selector: selector,
		executor: executor,
		direct:   direct,
		logger:   logger,
		cfg:      cfg,
	}
}

// Decide delegates to the action selector under its current threshold.
// Selection failures degrade to no action.
func (p *Policy) Decide(ctx context.Context, task entity.Task, feedback string) *entity.Action {
	action, err := p.selector.Select(ctx, task.Description, feedback)
	if err != nil {
		p.logger.Warn("Action selection failed", "error", err)
		return nil
	}
	return action
}

// Route runs the chosen path(s) and assembles the iteration's result. With
// an action selected, the action runs first; depending on configuration the
// direct fallback still follows in the same iteration and its output is
// appended to the report.
func (p *Policy) Route(ctx context.Context, task entity.Task, req ExecuteRequest, action *entity.Action) (entity.ExecutionResult, error) {
	var reports []string

	if action != nil {
		parts, err := p.executor.Execute(ctx, task.Description, *action, req.Context)
		if err != nil {
			p.logger.Error("Action execution failed", "action", action.Name, "error", err)
		} else if formatted := FormatActionParts(parts); formatted != "" {
			reports = append(reports, formatted)
		}
	}

	if action == nil || p.cfg.RunFallbackAfterAction {
		direct, err := p.direct.Execute(ctx, req)
		if err != nil {
			p.logger.Error("Direct execution failed", "error", err)
		} else if direct != "" {
			reports = append(reports, direct)
		}
	}

	return entity.ExecutionResult{
		TaskResult: strings.Join(reports, "\n\n"),
		Task:       task,
		Context:    req.Context,
		Order:      task.Order,
	}, nil
}

// FormatActionParts flattens a multi-part action output into a single
// newline-delimited report.
func FormatActionParts(parts []entity.ActionPart) string {
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		blocks = append(blocks, part.Key+":\n"+part.Value+"\n\n---\n")
	}
	joined := strings.Join(blocks, "\n")
	return strings.Trim(joined, "-\n")
}
