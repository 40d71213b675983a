package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docchat/internal/vectorstore VectorStore

import "context"

// Point represents a stored fragment: its embedding plus metadata.
// The fragment text itself travels in Meta under the "text" key so the
// collection is self-contained.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents one hit from a similarity search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
// An absent or empty collection is "not ready" rather than an error:
// Count reports zero and Search reports no hits.
type VectorStore interface {
	// EnsureCollection creates the collection with the given vector size if it
	// does not exist yet. Idempotent.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// Upsert appends points to the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns at most k points ordered by descending similarity.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Count returns the number of stored points. A missing collection counts as zero.
	Count(ctx context.Context, collection string) (int, error)

	// ScrollMeta returns the metadata of every stored point. O(total entries);
	// acceptable for a single-user document set.
	ScrollMeta(ctx context.Context, collection string) ([]map[string]any, error)

	// Drop deletes the entire collection. Dropping a missing collection is not an error.
	Drop(ctx context.Context, collection string) error
}
