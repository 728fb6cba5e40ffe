package execution

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/usecase/dispatch"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

type mockStore struct {
	saved   map[string][]output.Document
	saveErr error
}

func (s *mockStore) Save(ctx context.Context, collection string, docs []output.Document) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.saved == nil {
		s.saved = make(map[string][]output.Document)
	}
	s.saved[collection] = append(s.saved[collection], docs...)
	return nil
}

func (s *mockStore) Query(context.Context, string, string, int) ([]output.ScoredDocument, error) {
	return nil, nil
}
func (s *mockStore) LoadAll(context.Context, string) ([]output.Document, error) { return nil, nil }
func (s *mockStore) DeleteCollection(context.Context, string) error             { return nil }

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

func newAgent(t *testing.T, llm *mockLLM, store *mockStore) *Agent {
	t.Helper()
	renderer, err := prompts.NewRenderer(prompts.DefaultConfig())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return New(llm, store, renderer, nopLogger{})
}

func sampleRequest() dispatch.ExecuteRequest {
	return dispatch.ExecuteRequest{
		Objective: "write a review",
		Task:      "collect sources",
		Summary:   "nothing done yet",
		Context:   "",
		Feedback:  "prefer recent papers",
	}
}

func TestExecute_ReturnsAndSavesResult(t *testing.T) {
	llm := &mockLLM{response: "found 12 papers"}
	store := &mockStore{}
	a := newAgent(t, llm, store)

	result, err := a.Execute(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result != "found 12 papers" {
		t.Errorf("unexpected result: %q", result)
	}

	docs := store.saved["Results"]
	if len(docs) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(docs))
	}
	if docs[0].Content != "found 12 papers" {
		t.Errorf("unexpected saved content: %q", docs[0].Content)
	}
	if docs[0].ID == "" {
		t.Error("expected a generated result id")
	}
}

func TestExecute_PromptCarriesRequestFields(t *testing.T) {
	llm := &mockLLM{response: "ok"}
	a := newAgent(t, llm, &mockStore{})

	if _, err := a.Execute(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	prompt := llm.prompts[0]
	for _, want := range []string{"write a review", "collect sources", "nothing done yet", "prefer recent papers"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExecute_SaveFailureIsSwallowed(t *testing.T) {
	llm := &mockLLM{response: "found 12 papers"}
	store := &mockStore{saveErr: errors.New("store down")}
	a := newAgent(t, llm, store)

	result, err := a.Execute(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("a failed save must not fail the execution: %v", err)
	}
	if result != "found 12 papers" {
		t.Errorf("unexpected result: %q", result)
	}
}

func TestExecute_RequestFailure(t *testing.T) {
	a := newAgent(t, &mockLLM{err: errors.New("model down")}, &mockStore{})

	if _, err := a.Execute(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected an error when the model call fails")
	}
}

func TestExecute_EmptyResultNotSaved(t *testing.T) {
	llm := &mockLLM{response: ""}
	store := &mockStore{}
	a := newAgent(t, llm, store)

	if _, err := a.Execute(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(store.saved["Results"]) != 0 {
		t.Error("empty results must not be stored")
	}
}
