package taskcreation

import (
	"context"
	"fmt"
	"strings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/infrastructure/yamlout"
)

// Agent turns an objective into an ordered list of task descriptions.
// It does not touch the queue itself; replacement is the queue manager's
// job so a malformed plan leaves the existing queue intact.
type Agent struct {
	llm      output.LLMPort
	renderer *prompts.Renderer
	logger   output.LoggerPort
}

func New(llm output.LLMPort, renderer *prompts.Renderer, logger output.LoggerPort) *Agent {
	return &Agent{
		llm:      llm,
		renderer: renderer,
		logger:   logger,
	}
}

type createPromptData struct {
	Objective string
}

func (a *Agent) CreateTasks(ctx context.Context, objective string) ([]string, error) {
	prompt, err := a.renderer.Render(entity.AgentStageCreateTasks, createPromptData{Objective: objective})
	if err != nil {
		return nil, fmt.Errorf("task creation prompt: %w", err)
	}

	resp, err := a.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("task creation request failed: %w", err)
	}

	tasks, err := parseTaskList(resp.Message.Content)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Task plan created", "tasks", len(tasks))
	return tasks, nil
}

func parseTaskList(raw string) ([]string, error) {
	var parsed struct {
		Tasks []string `yaml:"tasks"`
	}
	if err := yamlout.Extract(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMalformedReport, err)
	}

	tasks := make([]string, 0, len(parsed.Tasks))
	for _, task := range parsed.Tasks {
		if trimmed := strings.TrimSpace(task); trimmed != "" {
			tasks = append(tasks, trimmed)
		}
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no tasks key in plan output", entity.ErrMalformedReport)
	}
	return tasks, nil
}
