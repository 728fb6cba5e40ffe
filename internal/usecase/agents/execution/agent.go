package execution

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/usecase/dispatch"
)

const resultsCollection = "Results"

var _ dispatch.DirectExecutor = (*Agent)(nil)

// Agent is the direct-execution fallback: it works the current task through
// the model and saves the raw result into the results collection for later
// retrieval by the summarizer.
type Agent struct {
	llm      output.LLMPort
	store    output.DocumentStorePort
	renderer *prompts.Renderer
	logger   output.LoggerPort
}

func New(
	llm output.LLMPort,
	store output.DocumentStorePort,
	renderer *prompts.Renderer,
	logger output.LoggerPort,
) *Agent {
	return &Agent{
		llm:      llm,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

func (a *Agent) Execute(ctx context.Context, req dispatch.ExecuteRequest) (string, error) {
	prompt, err := a.renderer.Render(entity.AgentStageExecute, req)
	if err != nil {
		return "", fmt.Errorf("execution prompt: %w", err)
	}

	resp, err := a.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return "", fmt.Errorf("execution request failed: %w", err)
	}

	result := resp.Message.Content
	a.saveResult(ctx, result)
	return result, nil
}

// saveResult stores the raw output; a failed save only costs future
// summaries, so it is logged and swallowed.
func (a *Agent) saveResult(ctx context.Context, result string) {
	if result == "" {
		return
	}
	doc := output.Document{
		ID:      uuid.NewString(),
		Content: result,
	}
	if err := a.store.Save(ctx, resultsCollection, []output.Document{doc}); err != nil {
		a.logger.Error("Failed to save execution result", "error", err)
	}
}
