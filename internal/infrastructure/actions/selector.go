package actions

import (
	"context"
	"strings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/infrastructure/yamlout"
)

var _ output.ActionSelectorPort = (*Selector)(nil)

const (
	actionsCollection  = "Actions"
	defaultResultCount = 10
)

// Selector retrieves candidate actions from the store by similarity to the
// current task, filters them by the frustration-derived distance threshold,
// and lets the model confirm a single pick. Selection failures degrade to
// "no action" so the loop can fall back to direct execution.
type Selector struct {
	store    output.DocumentStorePort
	llm      output.LLMPort
	renderer *prompts.Renderer
	logger   output.LoggerPort

	threshold   float64
	resultCount int
}

func NewSelector(
	store output.DocumentStorePort,
	llm output.LLMPort,
	renderer *prompts.Renderer,
	logger output.LoggerPort,
) *Selector {
	return &Selector{
		store:       store,
		llm:         llm,
		renderer:    renderer,
		logger:      logger,
		resultCount: defaultResultCount,
	}
}

func (s *Selector) SetThreshold(threshold float64) {
	s.threshold = threshold
}

func (s *Selector) SetResultCount(n int) {
	if n > 0 {
		s.resultCount = n
	}
}

func (s *Selector) Select(ctx context.Context, task, feedback string) (*entity.Action, error) {
	hits, err := s.store.Query(ctx, actionsCollection, task, s.resultCount)
	if err != nil {
		s.logger.Warn("Action retrieval failed", "error", err)
		return nil, nil
	}

	candidates := make([]entity.Action, 0, len(hits))
	for _, hit := range hits {
		if hit.Distance > s.threshold {
			continue
		}
		candidates = append(candidates, actionFromDocument(hit.Document))
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	picked := s.confirm(ctx, task, feedback, candidates)
	if picked == nil {
		return nil, nil
	}

	s.logger.Info("Action selected", "name", picked.Name, "candidates", len(candidates))
	return picked, nil
}

type selectPromptData struct {
	Task       string
	Feedback   string
	Candidates []entity.Action
}

// confirm asks the model to pick one candidate by name. Anything that is
// not an exact (case-insensitive) candidate name counts as no pick.
func (s *Selector) confirm(ctx context.Context, task, feedback string, candidates []entity.Action) *entity.Action {
	prompt, err := s.renderer.Render(entity.AgentStageSelectAction, selectPromptData{
		Task:       task,
		Feedback:   feedback,
		Candidates: candidates,
	})
	if err != nil {
		s.logger.Error("Action selection prompt failed", "error", err)
		return nil
	}

	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		s.logger.Warn("Action selection request failed", "error", err)
		return nil
	}

	var parsed struct {
		Action string `yaml:"action"`
	}
	if err := yamlout.Extract(resp.Message.Content, &parsed); err != nil {
		s.logger.Warn("Action selection output not parseable", "error", err)
		return nil
	}

	name := strings.TrimSpace(parsed.Action)
	if name == "" || strings.EqualFold(name, "none") {
		return nil
	}

	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, name) {
			return &candidates[i]
		}
	}

	s.logger.Warn("Model picked an unknown action", "name", name)
	return nil
}

func actionFromDocument(doc output.Document) entity.Action {
	name := doc.ID
	if n, ok := doc.Metadata["Name"].(string); ok && n != "" {
		name = n
	}
	return entity.Action{
		Name:        name,
		Description: doc.Content,
	}
}
