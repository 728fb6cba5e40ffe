package actions

import (
	"context"
	"fmt"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

var _ output.ActionExecutorPort = (*Executor)(nil)

// Executor runs a selected action through the model and returns the output
// as ordered parts: the action header first, then its result.
type Executor struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewExecutor(llm output.LLMPort, logger output.LoggerPort) *Executor {
	return &Executor{
		llm:    llm,
		logger: logger,
	}
}

func (e *Executor) Execute(ctx context.Context, task string, action entity.Action, reason string) ([]entity.ActionPart, error) {
	prompt := buildActionPrompt(task, action, reason)

	resp, err := e.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("action %q failed: %w", action.Name, err)
	}

	e.logger.Debug("Action executed", "name", action.Name, "resultLen", len(resp.Message.Content))

	return []entity.ActionPart{
		{Key: action.Name, Value: action.Description},
		{Key: "Result", Value: resp.Message.Content},
	}, nil
}

func buildActionPrompt(task string, action entity.Action, reason string) string {
	prompt := fmt.Sprintf(`You are carrying out the action %q for an autonomous task agent.

Action description: %s

Current task: %s`, action.Name, action.Description, task)

	if reason != "" {
		prompt += fmt.Sprintf("\n\nContext from the last status evaluation:\n%s", reason)
	}

	prompt += "\n\nPerform the action and report its outcome as plain text."
	return prompt
}
