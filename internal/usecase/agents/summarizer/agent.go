package summarizer

import (
	"context"
	"fmt"
	"strings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/infrastructure/yamlout"
)

const (
	resultsCollection = "Results"
	searchResultCount = 5
)

// Agent condenses prior results relevant to the current task into a short
// context summary for the execution path.
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

type summarizePromptData struct {
	Query string
	Text  string
}

// Summarize searches stored results with the task text and summarizes the
// hits. No hits means no summary — an empty string, not an error.
func (a *Agent) Summarize(ctx context.Context, taskText string) (string, error) {
	hits, err := a.store.Query(ctx, resultsCollection, taskText, searchResultCount)
	if err != nil {
		a.logger.Warn("Result search failed", "error", err)
		return "", nil
	}
	if len(hits) == 0 {
		return "", nil
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		texts = append(texts, hit.Content)
	}

	prompt, err := a.renderer.Render(entity.AgentStageSummarize, summarizePromptData{
		Query: taskText,
		Text:  strings.Join(texts, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("summarize prompt: %w", err)
	}

	resp, err := a.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return "", fmt.Errorf("summarize request failed: %w", err)
	}

	return extractSummary(resp.Message.Content), nil
}

// extractSummary pulls the summary key out of structured output, falling
// back to the raw text when the model ignored the format.
func extractSummary(raw string) string {
	var parsed struct {
		Summary string `yaml:"summary"`
	}
	if err := yamlout.Extract(raw, &parsed); err == nil && strings.TrimSpace(parsed.Summary) != "" {
		return strings.TrimSpace(parsed.Summary)
	}
	return strings.TrimSpace(raw)
}
