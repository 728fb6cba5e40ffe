package output

import "context"

// Document is one record of a store collection. Metadata keys follow the
// persisted layout: Status, Description, Order, List_ID for tasks.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// ScoredDocument pairs a query hit with its distance from the query text.
// Distance is in [0,2]; lower is closer.
type ScoredDocument struct {
	Document
	Distance float64
}

// DocumentStorePort is the contract against the external document store.
type DocumentStorePort interface {
	// Save upserts documents by id, overwriting existing metadata for
	// matching ids.
	Save(ctx context.Context, collection string, docs []Document) error

	// Query returns up to k nearest documents. An empty result is valid.
	Query(ctx context.Context, collection, text string, k int) ([]ScoredDocument, error)

	// LoadAll returns the full unordered snapshot of a collection. An
	// empty or absent collection yields an empty slice, never an error.
	LoadAll(ctx context.Context, collection string) ([]Document, error)

	// DeleteCollection removes a collection. Idempotent; absent
	// collections are not an error.
	DeleteCollection(ctx context.Context, collection string) error
}
