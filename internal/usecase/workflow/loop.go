package workflow

import (
	"context"
	"errors"

	"agenda-agent/internal/application/port/input"
	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/usecase/dispatch"
	"agenda-agent/internal/usecase/queue"
)

var _ input.WorkflowRunner = (*Loop)(nil)

// QueueManager is the slice of the queue manager the loop needs.
type QueueManager interface {
	LoadOrdered(ctx context.Context) []entity.Task
	CurrentTask(ordered []entity.Task) *entity.Task
}

// Dispatcher decides and routes one iteration's execution path.
type Dispatcher interface {
	Decide(ctx context.Context, task entity.Task, feedback string) *entity.Action
	Route(ctx context.Context, task entity.Task, req dispatch.ExecuteRequest, action *entity.Action) (entity.ExecutionResult, error)
}

// StatusEvaluator classifies an execution result and persists transitions.
type StatusEvaluator interface {
	Evaluate(ctx context.Context, exec entity.ExecutionResult) (entity.StatusResult, error)
	Persist(ctx context.Context, task entity.Task, status entity.TaskStatus) error
}

// FrustrationController adjusts the dispatch threshold per outcome.
type FrustrationController interface {
	OnTaskOutcome(status entity.TaskStatus) float64
	Value() float64
}

// Summarizer condenses prior results into task context.
type Summarizer interface {
	Summarize(ctx context.Context, taskText string) (string, error)
}

const resultsCollection = "Results"

// Loop is the top-level driver: it cycles
// Display -> FetchContext -> FetchFeedback -> RunIteration ->
// DetermineStatus -> AdjustFrustration until the queue is exhausted or the
// context is canceled. All state lives in an explicit WorkflowState value;
// one iteration runs to completion before the next begins.
type Loop struct {
	queue       QueueManager
	dispatcher  Dispatcher
	evaluator   StatusEvaluator
	frustration FrustrationController
	summarizer  Summarizer
	store       output.DocumentStorePort
	ui          output.UserInteractionPort
	transcript  output.TranscriptPort
	logger      output.LoggerPort
	objective   string
}

func New(
	queueManager QueueManager,
	dispatcher Dispatcher,
	evaluator StatusEvaluator,
	frustration FrustrationController,
	summarizer Summarizer,
	store output.DocumentStorePort,
	ui output.UserInteractionPort,
	transcript output.TranscriptPort,
	logger output.LoggerPort,
	objective string,
) *Loop {
	return &Loop{
		queue:       queueManager,
		dispatcher:  dispatcher,
		evaluator:   evaluator,
		frustration: frustration,
		summarizer:  summarizer,
		store:       store,
		ui:          ui,
		transcript:  transcript,
		logger:      logger,
		objective:   objective,
	}
}

// Run drives the loop until entity.ErrQueueExhausted (returned as-is) or
// context cancellation (returns ctx.Err after logging; whatever was already
// persisted stands, no rollback).
func (l *Loop) Run(ctx context.Context) error {
	state := entity.WorkflowState{Frustration: l.frustration.Value()}
	stage := entity.StageDisplay

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Loop interrupted", "stage", string(stage))
			return ctx.Err()
		default:
		}

		switch stage {
		case entity.StageDisplay:
			l.displayTaskList(ctx)
			stage = entity.StageFetchContext

		case entity.StageFetchContext:
			state.Context = contextFromStatus(state.Status)
			stage = entity.StageFetchFeedback

		case entity.StageFetchFeedback:
			feedback, err := l.ui.GetFeedback(ctx)
			if err != nil {
				l.logger.Warn("Feedback prompt failed", "error", err)
				feedback = ""
			}
			state.Feedback = feedback
			stage = entity.StageRunIteration

		case entity.StageRunIteration:
			if err := l.runIteration(ctx, &state); err != nil {
				if errors.Is(err, entity.ErrQueueExhausted) {
					l.logger.Info("Task list has been completed")
					return err
				}
				l.logger.Error("Iteration failed", "error", err)
				stage = entity.StageDisplay
				continue
			}
			stage = entity.StageDetermineStatus

		case entity.StageDetermineStatus:
			l.determineStatus(ctx, &state)
			stage = entity.StageAdjustFrustration

		case entity.StageAdjustFrustration:
			l.adjustFrustration(&state)
			stage = entity.StageDisplay
		}
	}
}

func (l *Loop) displayTaskList(ctx context.Context) {
	tasks := l.queue.LoadOrdered(ctx)
	l.ui.ShowTaskList(ctx, l.objective, tasks)

	if err := l.transcript.AppendTaskList(queue.RenderTaskList(l.objective, tasks)); err != nil {
		l.logger.Error("Failed to append task list to transcript", "error", err)
	}
}

// runIteration resolves the current task, summarizes it, and dispatches.
// Returns entity.ErrQueueExhausted when no not-completed task remains.
func (l *Loop) runIteration(ctx context.Context, state *entity.WorkflowState) error {
	l.logger.Debug("Running iteration")

	state.PriorResult = l.loadPriorResult(ctx)

	ordered := l.queue.LoadOrdered(ctx)
	current := l.queue.CurrentTask(ordered)
	if current == nil {
		return entity.ErrQueueExhausted
	}
	state.Current = current

	summary, err := l.summarizer.Summarize(ctx, current.Description)
	if err != nil {
		l.logger.Warn("Summarization failed", "error", err)
		summary = ""
	}
	state.Summary = summary
	if summary != "" {
		l.ui.ShowResult(ctx, "Summary", summary)
	}

	action := l.dispatcher.Decide(ctx, *current, state.Feedback)
	state.SelectedAction = action
	if action != nil {
		l.ui.ShowResult(ctx, "Action Selected", action.Name+": "+action.Description)
	}

	exec, err := l.dispatcher.Route(ctx, *current, dispatch.ExecuteRequest{
		Objective: l.objective,
		Task:      current.Description,
		Summary:   state.Summary,
		Context:   state.Context,
		Feedback:  state.Feedback,
	}, action)
	if err != nil {
		return err
	}
	state.Execution = &exec
	l.ui.ShowResult(ctx, "Execution Results", exec.TaskResult)

	l.logger.Debug("Iteration complete", "task", current.ID, "order", current.Order)
	return nil
}

func (l *Loop) determineStatus(ctx context.Context, state *entity.WorkflowState) {
	if state.Execution == nil {
		state.Status = entity.StatusResult{}
		return
	}

	result, err := l.evaluator.Evaluate(ctx, *state.Execution)
	if err != nil {
		// Unknown status: nothing is persisted, frustration untouched.
		l.logger.Warn("Status undetermined", "error", err)
		state.Status = entity.StatusResult{}
		return
	}

	state.Status = result
	l.ui.ShowResult(ctx, "Status Result", "Status: "+string(result.Status)+"\n\nReason: "+result.Reason)

	if err := l.evaluator.Persist(ctx, result.Task, result.Status); err != nil {
		l.logger.Error("Failed to persist task status", "error", err)
	}
}

func (l *Loop) adjustFrustration(state *entity.WorkflowState) {
	if state.Status.Empty() {
		return
	}
	state.Reason = state.Status.Reason
	state.Frustration = l.frustration.OnTaskOutcome(state.Status.Status)
}

// loadPriorResult fetches the most recent stored result for context; a
// missing collection degrades to a placeholder.
func (l *Loop) loadPriorResult(ctx context.Context) string {
	docs, err := l.store.LoadAll(ctx, resultsCollection)
	if err != nil {
		l.logger.Warn("Failed to load prior results", "error", err)
		return ""
	}
	if len(docs) == 0 {
		return "No results found"
	}
	return docs[len(docs)-1].Content
}

// contextFromStatus carries the evaluator's reason forward only while the
// task remains open; a completed task leaves no context behind.
func contextFromStatus(status entity.StatusResult) string {
	if status.Empty() {
		return ""
	}
	if status.Status != entity.TaskStatusCompleted {
		return status.Reason
	}
	return ""
}
