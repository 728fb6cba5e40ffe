package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/embeddings"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

var _ output.DocumentStorePort = (*Store)(nil)

// Store keeps named document collections in memory and mirrors every
// mutation into one JSON snapshot file per collection. Similarity queries
// rank by cosine distance over embeddings.
//
// The store assumes the single-writer, single-reader usage of the workflow
// loop; it is not safe for concurrent multi-process access.
type Store struct {
	embedder    embeddings.Embedder
	dataDir     string
	logger      output.LoggerPort
	collections map[string][]record
}

type record struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
}

type Config struct {
	// DataDir holds the snapshot files. Empty means in-memory only.
	DataDir  string
	Embedder embeddings.Embedder
	Logger   output.LoggerPort
}

func New(cfg Config) (*Store, error) {
	s := &Store{
		embedder:    cfg.Embedder,
		dataDir:     cfg.DataDir,
		logger:      cfg.Logger,
		collections: make(map[string][]record),
	}

	if s.dataDir != "" {
		if err := os.MkdirAll(s.dataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := s.loadSnapshots(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Save upserts by id. Existing records keep their position in the
// collection; new ids are appended in the given order.
func (s *Store) Save(ctx context.Context, collection string, docs []output.Document) error {
	if len(docs) == 0 {
		return nil
	}

	vectors, err := s.embedDocuments(ctx, docs)
	if err != nil {
		// Records stay queryable by snapshot order; only similarity
		// search degrades without vectors.
		if s.logger != nil {
			s.logger.Warn("Embedding failed, saving without vectors", "collection", collection, "error", err)
		}
		vectors = nil
	}

	records := s.collections[collection]
	for i, doc := range docs {
		rec := record{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: cloneMetadata(doc.Metadata),
		}
		if vectors != nil {
			rec.Embedding = vectors[i]
		}

		replaced := false
		for j := range records {
			if records[j].ID == doc.ID {
				records[j] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
	}
	s.collections[collection] = records

	return s.writeSnapshot(collection)
}

// Query returns up to k nearest documents by cosine distance. Records
// without embeddings are skipped; an empty result is valid.
func (s *Store) Query(ctx context.Context, collection, text string, k int) ([]output.ScoredDocument, error) {
	records := s.collections[collection]
	if len(records) == 0 || k <= 0 {
		return nil, nil
	}

	if s.embedder == nil {
		return nil, fmt.Errorf("query %q: %w: no embedder configured", collection, entity.ErrStoreUnavailable)
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w: %v", collection, entity.ErrStoreUnavailable, err)
	}

	scored := make([]output.ScoredDocument, 0, len(records))
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			continue
		}
		scored = append(scored, output.ScoredDocument{
			Document: output.Document{
				ID:       rec.ID,
				Content:  rec.Content,
				Metadata: cloneMetadata(rec.Metadata),
			},
			Distance: cosineDistance(queryVec, rec.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// LoadAll returns the full snapshot in insertion order. An absent
// collection yields an empty slice, never an error.
func (s *Store) LoadAll(ctx context.Context, collection string) ([]output.Document, error) {
	records := s.collections[collection]
	docs := make([]output.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, output.Document{
			ID:       rec.ID,
			Content:  rec.Content,
			Metadata: cloneMetadata(rec.Metadata),
		})
	}
	return docs, nil
}

// DeleteCollection drops the collection and its snapshot. Idempotent.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	delete(s.collections, collection)

	if s.dataDir == "" {
		return nil
	}
	if err := os.Remove(s.snapshotPath(collection)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete collection %q: %w: %v", collection, entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) embedDocuments(ctx context.Context, docs []output.Document) ([][]float32, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}
	return vectors, nil
}

func (s *Store) loadSnapshots() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("read data dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dataDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read snapshot %s: %w", path, err)
		}
		var records []record
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("decode snapshot %s: %w", path, err)
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		s.collections[name] = records
	}
	return nil
}

func (s *Store) writeSnapshot(collection string) error {
	if s.dataDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.collections[collection], "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", collection, err)
	}
	if err := os.WriteFile(s.snapshotPath(collection), data, 0644); err != nil {
		return fmt.Errorf("write snapshot %q: %w: %v", collection, entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) snapshotPath(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	clone := make(map[string]any, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// cosineDistance is 1 - cosine similarity: 0 for identical directions,
// up to 2 for opposite ones.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
