package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"docchat/internal/contextutil"
	"docchat/internal/vectorstore"
)

// Assembler retrieves fragments for a query and formats them into a single
// context block with inline citations.
type Assembler struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
}

// NewAssembler creates a context assembler over the given collection.
func NewAssembler(embedder Embedder, store vectorstore.VectorStore, collection string) *Assembler {
	return &Assembler{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// Ready reports whether the collection holds at least one fragment.
// A read failure counts as not ready rather than an error.
func (a *Assembler) Ready(ctx context.Context) bool {
	logger := contextutil.LoggerFromContext(ctx)

	count, err := a.store.Count(ctx, a.collection)
	if err != nil {
		logger.WarnContext(ctx, "failed to count collection entries", "collection", a.collection, "error", err)
		return false
	}
	return count > 0
}

// Assemble embeds the query, searches the collection, and formats the top k
// hits into one context block in descending-similarity order. Citations are
// deduplicated and sorted lexicographically for stable display.
func (a *Assembler) Assemble(ctx context.Context, query string, k int) (Assembly, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !a.Ready(ctx) {
		return Assembly{Status: StatusNotIndexed}, nil
	}

	embeddings, err := a.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return Assembly{}, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return Assembly{}, fmt.Errorf("no embedding returned for query")
	}

	results, err := a.store.Search(ctx, a.collection, embeddings[0], k)
	if err != nil {
		return Assembly{}, fmt.Errorf("failed to search collection: %w", err)
	}
	if len(results) == 0 {
		logger.InfoContext(ctx, "no search results", "k", k)
		return Assembly{Status: StatusNoMatch}, nil
	}

	parts := make([]string, 0, len(results))
	seen := make(map[string]bool)
	citations := make([]string, 0, len(results))
	for _, result := range results {
		citation := formatCitation(result.Meta)
		text, _ := result.Meta["text"].(string)
		parts = append(parts, citation+" "+text)
		if !seen[citation] {
			seen[citation] = true
			citations = append(citations, citation)
		}
	}
	sort.Strings(citations)

	logger.InfoContext(ctx, "context assembled",
		"results_count", len(results),
		"citations_count", len(citations),
		"k", k,
	)

	return Assembly{
		Status:    StatusReady,
		Context:   strings.Join(parts, "\n\n"),
		Citations: citations,
	}, nil
}

// formatCitation builds the "[name p.N]" reference from stored metadata.
// Unknown pages render as "p.?".
func formatCitation(meta map[string]any) string {
	name, _ := meta["document_name"].(string)
	if name == "" {
		name = "doc"
	}
	return fmt.Sprintf("[%s p.%s]", name, pageLabel(meta))
}

// pageLabel normalizes the page metadata value, which arrives as a different
// numeric type depending on the storage backend.
func pageLabel(meta map[string]any) string {
	switch v := meta["page"].(type) {
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%d", int(v))
	case string:
		if v != "" {
			return v
		}
	}
	return "?"
}
