package status

import (
	"context"
	"fmt"
	"strings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/infrastructure/yamlout"
)

const tasksCollection = "Tasks"

// Evaluator turns an execution report into a structured status and persists
// the task's status transition.
type Evaluator struct {
	llm        output.LLMPort
	store      output.DocumentStorePort
	transcript output.TranscriptPort
	renderer   *prompts.Renderer
	logger     output.LoggerPort
}

func New(
	llm output.LLMPort,
	store output.DocumentStorePort,
	transcript output.TranscriptPort,
	renderer *prompts.Renderer,
	logger output.LoggerPort,
) *Evaluator {
	return &Evaluator{
		llm:        llm,
		store:      store,
		transcript: transcript,
		renderer:   renderer,
		logger:     logger,
	}
}

type statusPromptData struct {
	Task    string
	Result  string
	Context string
}

// Evaluate asks the model whether the iteration's result completed the
// task, then parses and classifies the report. A malformed report yields an
// empty StatusResult and ErrMalformedReport; callers must treat empty as
// unknown and skip persistence.
func (e *Evaluator) Evaluate(ctx context.Context, exec entity.ExecutionResult) (entity.StatusResult, error) {
	prompt, err := e.renderer.Render(entity.AgentStageStatus, statusPromptData{
		Task:    exec.Task.Description,
		Result:  exec.TaskResult,
		Context: exec.Context,
	})
	if err != nil {
		return entity.StatusResult{}, fmt.Errorf("status prompt: %w", err)
	}

	resp, err := e.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return entity.StatusResult{}, fmt.Errorf("status request failed: %w", err)
	}

	result, err := Parse(resp.Message.Content, exec.Task)
	if err != nil {
		e.logger.Warn("Status report not parseable", "error", err)
		return entity.StatusResult{}, err
	}

	if result.Status == entity.TaskStatusCompleted {
		if err := e.transcript.AppendTaskResult(result.Task, exec.TaskResult); err != nil {
			e.logger.Error("Failed to append transcript entry", "error", err)
		}
	}

	return result, nil
}

// Parse extracts {status, reason} from a raw status report. The status is
// lowercased and trimmed. A report without structured content or without a
// status key is malformed.
func Parse(rawReport string, task entity.Task) (entity.StatusResult, error) {
	var parsed struct {
		Status string `yaml:"status"`
		Reason string `yaml:"reason"`
	}
	if err := yamlout.Extract(rawReport, &parsed); err != nil {
		return entity.StatusResult{}, fmt.Errorf("%w: %v", entity.ErrMalformedReport, err)
	}

	status := strings.ToLower(strings.TrimSpace(parsed.Status))
	if status == "" {
		return entity.StatusResult{}, fmt.Errorf("%w: missing status key", entity.ErrMalformedReport)
	}

	result := entity.StatusResult{
		Task:   task,
		Status: entity.TaskStatus(status),
		Reason: strings.TrimSpace(parsed.Reason),
	}
	result.Task.Status = result.Status
	return result, nil
}

// Persist writes {Status, Description, Order} metadata back for the task
// id, overwriting prior metadata. Last write wins; no merge.
func (e *Evaluator) Persist(ctx context.Context, task entity.Task, status entity.TaskStatus) error {
	doc := output.Document{
		ID:      task.ID,
		Content: task.Description,
		Metadata: map[string]any{
			"Status":      string(status),
			"Description": task.Description,
			"Order":       task.Order,
		},
	}

	if err := e.store.Save(ctx, tasksCollection, []output.Document{doc}); err != nil {
		return fmt.Errorf("persist status: %w", err)
	}

	e.logger.Debug("Task status persisted", "id", task.ID, "status", string(status))
	return nil
}
