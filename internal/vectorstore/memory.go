package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-memory VectorStore with cosine similarity search.
// It backs the "memory" vector backend and the engine-level tests.
// Score ties are broken by insertion order, which keeps results deterministic.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	vectorSize int
	points     []Point
}

// NewMemoryStore creates an empty in-memory vector store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// EnsureCollection creates the collection if it does not exist yet.
func (s *MemoryStore) EnsureCollection(_ context.Context, collection string, vectorSize int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.collections[collection]; ok {
		if existing.vectorSize != vectorSize {
			return fmt.Errorf("collection vector size mismatch: expected %d, got %d", existing.vectorSize, vectorSize)
		}
		return nil
	}
	s.collections[collection] = &memoryCollection{vectorSize: vectorSize}
	return nil
}

// Upsert appends points to the collection.
func (s *MemoryStore) Upsert(_ context.Context, collection string, points []Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("collection %s does not exist", collection)
	}
	for _, point := range points {
		if len(point.Vec) != coll.vectorSize {
			return fmt.Errorf("point %s has vector size %d, expected %d", point.ID, len(point.Vec), coll.vectorSize)
		}
	}
	coll.points = append(coll.points, points...)
	return nil
}

// Search returns at most k points ordered by descending cosine similarity.
func (s *MemoryStore) Search(_ context.Context, collection string, query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}

	type scored struct {
		order int
		res   SearchResult
	}
	results := make([]scored, 0, len(coll.points))
	for i, point := range coll.points {
		results = append(results, scored{
			order: i,
			res: SearchResult{
				PointID: point.ID,
				Score:   cosineSimilarity(query, point.Vec),
				Meta:    point.Meta,
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].res.Score != results[j].res.Score {
			return results[i].res.Score > results[j].res.Score
		}
		return results[i].order < results[j].order
	})

	if len(results) > k {
		results = results[:k]
	}
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = r.res
	}
	return out, nil
}

// Count returns the number of stored points; a missing collection counts as zero.
func (s *MemoryStore) Count(_ context.Context, collection string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		return 0, nil
	}
	return len(coll.points), nil
}

// ScrollMeta returns the metadata of every stored point in insertion order.
func (s *MemoryStore) ScrollMeta(_ context.Context, collection string) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	metas := make([]map[string]any, 0, len(coll.points))
	for _, point := range coll.points {
		metas = append(metas, point.Meta)
	}
	return metas, nil
}

// Drop deletes the entire collection. Dropping a missing collection is not an error.
func (s *MemoryStore) Drop(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, collection)
	return nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero-magnitude vectors score zero.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
