package docstore

import (
	"context"
	"errors"
	"testing"

	"agenda-agent/internal/application/port/output"
)

// fakeEmbedder maps known texts onto fixed vectors so ranking is
// predictable; unknown texts embed to the zero vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vectorFor(text)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectorFor(text), nil
}

func (f *fakeEmbedder) vectorFor(text string) []float32 {
	if vec, ok := f.vectors[text]; ok {
		return vec
	}
	return []float32{0, 0, 0}
}

func newTestStore(t *testing.T, embedder *fakeEmbedder) *Store {
	t.Helper()
	s, err := New(Config{Embedder: embedder})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func doc(id, content string) output.Document {
	return output.Document{ID: id, Content: content, Metadata: map[string]any{"Description": content}}
}

func TestSave_UpsertKeepsPosition(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{})
	ctx := context.Background()

	if err := s.Save(ctx, "Tasks", []output.Document{doc("1", "first"), doc("2", "second")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "Tasks", []output.Document{doc("1", "first revised")}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	docs, err := s.LoadAll(ctx, "Tasks")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "1" || docs[0].Content != "first revised" {
		t.Errorf("expected the upsert to replace in place, got %+v", docs[0])
	}
	if docs[1].ID != "2" {
		t.Errorf("expected second document untouched, got %+v", docs[1])
	}
}

func TestSave_EmbeddingFailureStillSaves(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{err: errors.New("embedder down")})
	ctx := context.Background()

	if err := s.Save(ctx, "Tasks", []output.Document{doc("1", "first")}); err != nil {
		t.Fatalf("Save must not fail on embedding errors: %v", err)
	}

	docs, err := s.LoadAll(ctx, "Tasks")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected the document saved without vectors, got %d", len(docs))
	}
}

func TestLoadAll_AbsentCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{})

	docs, err := s.LoadAll(context.Background(), "Nothing")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty slice, got %d documents", len(docs))
	}
}

func TestDeleteCollection_Idempotent(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{})
	ctx := context.Background()

	if err := s.Save(ctx, "Tasks", []output.Document{doc("1", "first")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.DeleteCollection(ctx, "Tasks"); err != nil {
		t.Fatalf("DeleteCollection failed: %v", err)
	}
	if err := s.DeleteCollection(ctx, "Tasks"); err != nil {
		t.Fatalf("second DeleteCollection failed: %v", err)
	}

	docs, _ := s.LoadAll(ctx, "Tasks")
	if len(docs) != 0 {
		t.Errorf("expected empty collection after delete, got %d documents", len(docs))
	}
}

func TestQuery_RanksByCosineDistance(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"search the web":   {1, 0, 0},
		"write to a file":  {0, 1, 0},
		"browse a website": {0.9, 0.1, 0},
		"find information": {1, 0.05, 0},
	}}
	s := newTestStore(t, embedder)
	ctx := context.Background()

	err := s.Save(ctx, "Actions", []output.Document{
		doc("a", "search the web"),
		doc("b", "write to a file"),
		doc("c", "browse a website"),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	hits, err := s.Query(ctx, "Actions", "find information", 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "a" {
		t.Errorf("expected the closest document first, got %q", hits[0].ID)
	}
	if hits[1].ID != "c" {
		t.Errorf("expected the second-closest document, got %q", hits[1].ID)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Error("expected ascending distances")
	}
}

func TestQuery_EmptyCollection(t *testing.T) {
	s := newTestStore(t, &fakeEmbedder{})

	hits, err := s.Query(context.Background(), "Actions", "anything", 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestQuery_SkipsRecordsWithoutVectors(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{"query": {1, 0, 0}}}
	s := newTestStore(t, &fakeEmbedder{err: errors.New("embedder down")})
	ctx := context.Background()

	// Saved without vectors, then queried with a healthy embedder.
	if err := s.Save(ctx, "Actions", []output.Document{doc("a", "no vector")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.embedder = embedder

	hits, err := s.Query(ctx, "Actions", "query", 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("records without vectors must not surface, got %d hits", len(hits))
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := New(Config{DataDir: dir, Embedder: &fakeEmbedder{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	err = first.Save(ctx, "Tasks", []output.Document{
		doc("1", "first"),
		doc("2", "second"),
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second, err := New(Config{DataDir: dir, Embedder: &fakeEmbedder{}})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	docs, err := second.LoadAll(ctx, "Tasks")
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents after reopen, got %d", len(docs))
	}
	if docs[0].Content != "first" || docs[1].Content != "second" {
		t.Errorf("snapshot lost ordering: %+v", docs)
	}
	if docs[0].Metadata["Description"] != "first" {
		t.Errorf("snapshot lost metadata: %+v", docs[0].Metadata)
	}
}

func TestCosineDistance(t *testing.T) {
	if d := cosineDistance([]float32{1, 0}, []float32{1, 0}); d > 1e-9 {
		t.Errorf("identical vectors: expected distance 0, got %f", d)
	}
	if d := cosineDistance([]float32{1, 0}, []float32{0, 1}); d < 0.999 || d > 1.001 {
		t.Errorf("orthogonal vectors: expected distance 1, got %f", d)
	}
	if d := cosineDistance([]float32{1, 0}, []float32{0, 0}); d != 1 {
		t.Errorf("zero vector: expected distance 1, got %f", d)
	}
}
