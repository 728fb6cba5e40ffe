package taskcreation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

type mockLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	m.prompts = append(m.prompts, req.Messages[len(req.Messages)-1].Content)
	if m.err != nil {
		return nil, m.err
	}
	return &output.ChatResponse{
		Message: entity.Message{Role: entity.RoleAssistant, Content: m.response},
	}, nil
}

func newAgent(t *testing.T, llm *mockLLM) *Agent {
	t.Helper()
	renderer, err := prompts.NewRenderer(prompts.DefaultConfig())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return New(llm, renderer, nopLogger{})
}

func TestCreateTasks_ParsesPlan(t *testing.T) {
	llm := &mockLLM{response: "tasks:\n  - Collect sources\n  - Summarize findings\n  - Write the review\n"}
	a := newAgent(t, llm)

	tasks, err := a.CreateTasks(context.Background(), "Write a literature review")
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}

	want := []string{"Collect sources", "Summarize findings", "Write the review"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task %d: expected %q, got %q", i, want[i], tasks[i])
		}
	}

	if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "Write a literature review") {
		t.Error("prompt should contain the objective")
	}
}

func TestCreateTasks_FencedPlan(t *testing.T) {
	llm := &mockLLM{response: "Here is the plan:\n```yaml\ntasks:\n  - one\n  - two\n```"}
	a := newAgent(t, llm)

	tasks, err := a.CreateTasks(context.Background(), "objective")
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestCreateTasks_DropsBlankEntries(t *testing.T) {
	llm := &mockLLM{response: "tasks:\n  - '  one  '\n  - '   '\n  - two\n"}
	a := newAgent(t, llm)

	tasks, err := a.CreateTasks(context.Background(), "objective")
	if err != nil {
		t.Fatalf("CreateTasks failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0] != "one" || tasks[1] != "two" {
		t.Errorf("expected trimmed non-blank tasks, got %v", tasks)
	}
}

func TestCreateTasks_MalformedPlan(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"prose", "I would start by collecting sources."},
		{"missing key", "plan:\n  - one\n"},
		{"empty list", "tasks: []\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newAgent(t, &mockLLM{response: tc.response})
			_, err := a.CreateTasks(context.Background(), "objective")
			if !errors.Is(err, entity.ErrMalformedReport) {
				t.Errorf("expected ErrMalformedReport, got %v", err)
			}
		})
	}
}

func TestCreateTasks_RequestFailure(t *testing.T) {
	a := newAgent(t, &mockLLM{err: errors.New("model down")})

	_, err := a.CreateTasks(context.Background(), "objective")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, entity.ErrMalformedReport) {
		t.Error("a transport failure is not a malformed plan")
	}
}
