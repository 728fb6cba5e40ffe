package queue

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

const tasksCollection = "Tasks"

// Manager owns the ordered task queue: loading it, finding the current
// task, and rewriting the whole queue on (re)planning.
type Manager struct {
	store  output.DocumentStorePort
	logger output.LoggerPort
}

func New(store output.DocumentStorePort, logger output.LoggerPort) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// LoadOrdered fetches all tasks sorted by Order ascending. Ties keep the
// store's original order. Read failures degrade to an empty list; the loop
// prefers skipping an iteration over crashing.
func (m *Manager) LoadOrdered(ctx context.Context) []entity.Task {
	docs, err := m.store.LoadAll(ctx, tasksCollection)
	if err != nil {
		m.logger.Error("Failed to load task queue", "error", err)
		return nil
	}

	tasks := make([]entity.Task, 0, len(docs))
	for _, doc := range docs {
		task, ok := taskFromDocument(doc)
		if !ok {
			m.logger.Warn("Skipping malformed task record", "id", doc.ID)
			continue
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})

	return tasks
}

// CurrentTask returns the first not-completed task of an ordered list, or
// nil when the queue is exhausted.
func (m *Manager) CurrentTask(ordered []entity.Task) *entity.Task {
	for i := range ordered {
		if ordered[i].Status != entity.TaskStatusCompleted {
			task := ordered[i]
			return &task
		}
	}
	return nil
}

// ReplaceQueue rewrites the whole queue from an ordered list of
// descriptions: order = index+1, fresh List_ID per task, all statuses
// not completed. Delete-then-insert runs as two separate store calls, so a
// concurrent reader may observe an empty or partial queue mid-replacement.
func (m *Manager) ReplaceQueue(ctx context.Context, descriptions []string) error {
	if len(descriptions) == 0 {
		m.logger.Warn("Refusing to replace queue with an empty task list")
		return nil
	}

	if err := m.store.DeleteCollection(ctx, tasksCollection); err != nil {
		return fmt.Errorf("replace queue: %w", err)
	}

	docs := make([]output.Document, 0, len(descriptions))
	for i, desc := range descriptions {
		order := i + 1
		docs = append(docs, output.Document{
			ID:      strconv.Itoa(order),
			Content: strings.TrimSpace(desc),
			Metadata: map[string]any{
				"Status":      string(entity.TaskStatusNotCompleted),
				"Description": strings.TrimSpace(desc),
				"Order":       order,
				"List_ID":     uuid.NewString(),
			},
		})
	}

	if err := m.store.Save(ctx, tasksCollection, docs); err != nil {
		return fmt.Errorf("replace queue: %w", err)
	}

	m.logger.Info("Task queue replaced", "tasks", len(docs))
	return nil
}

// RenderTaskList produces the plain-text agenda block appended to the
// audit transcript on each display.
func RenderTaskList(objective string, tasks []entity.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %s\n\nTasks:\n", objective)
	for _, task := range tasks {
		fmt.Fprintf(&b, "\n%d: %s", task.Order, task.Description)
	}
	return b.String()
}

func taskFromDocument(doc output.Document) (entity.Task, bool) {
	order, ok := metadataInt(doc.Metadata, "Order")
	if !ok {
		return entity.Task{}, false
	}

	description := doc.Content
	if d, ok := doc.Metadata["Description"].(string); ok && d != "" {
		description = d
	}

	status := entity.TaskStatusNotCompleted
	if s, ok := doc.Metadata["Status"].(string); ok && s != "" {
		status = entity.TaskStatus(s)
	}

	listID, _ := doc.Metadata["List_ID"].(string)

	return entity.Task{
		ID:          doc.ID,
		Description: description,
		Status:      status,
		Order:       order,
		ListID:      listID,
	}, true
}

// metadataInt tolerates the numeric types a JSON snapshot round-trip
// produces for Order.
func metadataInt(metadata map[string]any, key string) (int, bool) {
	switch v := metadata[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
