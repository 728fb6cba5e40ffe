package actions

import (
	"context"
	"fmt"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

// DefaultActions is the built-in action catalog seeded into the "Actions"
// collection on first run.
func DefaultActions() []entity.Action {
	return []entity.Action{
		{
			Name:        "Web Search",
			Description: "Search the web for information relevant to the current task and report the findings.",
		},
		{
			Name:        "Read File",
			Description: "Read the contents of a local file referenced by the current task.",
		},
		{
			Name:        "Write File",
			Description: "Write or update a local file with content produced for the current task.",
		},
		{
			Name:        "Scrape Website",
			Description: "Fetch a specific web page named by the current task and extract its text.",
		},
		{
			Name:        "Brainstorm",
			Description: "Generate a list of ideas or approaches for an open-ended task.",
		},
	}
}

// Seed fills the actions collection when it is empty. Existing catalogs are
// left untouched so operator-added actions survive restarts.
func Seed(ctx context.Context, store output.DocumentStorePort, logger output.LoggerPort) error {
	existing, err := store.LoadAll(ctx, actionsCollection)
	if err != nil {
		return fmt.Errorf("seed actions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	catalog := DefaultActions()
	docs := make([]output.Document, 0, len(catalog))
	for _, action := range catalog {
		docs = append(docs, output.Document{
			ID:      action.Name,
			Content: action.Description,
			Metadata: map[string]any{
				"Name": action.Name,
			},
		})
	}

	if err := store.Save(ctx, actionsCollection, docs); err != nil {
		return fmt.Errorf("seed actions: %w", err)
	}

	logger.Info("Seeded action catalog", "count", len(docs))
	return nil
}
