package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"docchat/internal/contextutil"
	"docchat/internal/storage"
	"docchat/internal/vectorstore"
)

// PageExtractor pulls page-level text out of a PDF file.
type PageExtractor interface {
	ExtractPages(path string) ([]PageText, error)
}

// Embedder turns fragment texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IngestReport summarizes one ingestion batch.
type IngestReport struct {
	Documents int      `json:"documents"`
	Fragments int      `json:"fragments"`
	Skipped   []string `json:"skipped,omitempty"`
}

// Pipeline runs the ingestion path: extract pages, segment into fragments,
// embed, and upsert into the vector collection, recording one catalog entry
// per document. Processing is wholly sequential; one document at a time.
type Pipeline struct {
	extractor  PageExtractor
	chunker    *Chunker
	embedder   Embedder
	store      vectorstore.VectorStore
	docs       storage.DocumentStore
	collection string
	vectorSize int
}

// NewPipeline creates an ingestion pipeline over the given collection.
func NewPipeline(
	extractor PageExtractor,
	embedder Embedder,
	store vectorstore.VectorStore,
	docs storage.DocumentStore,
	collection string,
	vectorSize int,
) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		chunker:    NewChunker(),
		embedder:   embedder,
		store:      store,
		docs:       docs,
		collection: collection,
		vectorSize: vectorSize,
	}
}

// Ingest indexes the given PDF files. Document ids are batch-local, starting
// at 1 for each call. Files that cannot be extracted or yield no usable text
// are skipped and reported, not fatal. The collection is created on first use.
func (p *Pipeline) Ingest(ctx context.Context, paths []string) (IngestReport, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var report IngestReport

	if len(paths) == 0 {
		return report, nil
	}

	if err := p.store.EnsureCollection(ctx, p.collection, p.vectorSize); err != nil {
		return report, fmt.Errorf("failed to ensure collection: %w", err)
	}

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		docID := i + 1
		name := filepath.Base(path)

		fragments, sizeBytes, pages, err := p.ingestOne(ctx, path, docID, name)
		if err != nil {
			logger.WarnContext(ctx, "skipping document", "file", name, "error", err)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		record := &storage.DocumentRecord{
			DocID:     docID,
			Name:      name,
			Pages:     pages,
			SizeBytes: sizeBytes,
			Fragments: fragments,
		}
		if err := p.docs.Insert(ctx, record); err != nil {
			return report, fmt.Errorf("failed to record document %s: %w", name, err)
		}

		report.Documents++
		report.Fragments += fragments
		logger.InfoContext(ctx, "document indexed",
			"file", name,
			"doc_id", docID,
			"pages", pages,
			"fragments", fragments,
			"size_bytes", sizeBytes,
		)
	}

	return report, nil
}

// ingestOne processes a single file and returns its fragment count, file
// size, and the number of pages that yielded extractable text.
func (p *Pipeline) ingestOne(ctx context.Context, path string, docID int, name string) (int, int64, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	pages, err := p.extractor.ExtractPages(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to extract text: %w", err)
	}

	fragments := p.chunker.SplitPages(pages)
	if len(fragments) == 0 {
		return 0, 0, 0, fmt.Errorf("no usable text extracted")
	}

	texts := make([]string, len(fragments))
	for i, fragment := range fragments {
		texts[i] = fragment.Text
	}
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to embed fragments: %w", err)
	}
	if len(vectors) != len(fragments) {
		return 0, 0, 0, fmt.Errorf("expected %d embeddings, got %d", len(fragments), len(vectors))
	}

	points := make([]vectorstore.Point, len(fragments))
	for i, fragment := range fragments {
		points[i] = vectorstore.Point{
			ID:  uuid.NewString(),
			Vec: vectors[i],
			Meta: map[string]any{
				"text":           fragment.Text,
				"document_id":    docID,
				"document_name":  name,
				"page":           fragment.Page,
				"fragment_index": fragment.Index,
			},
		}
	}
	if err := p.store.Upsert(ctx, p.collection, points); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to upsert fragments: %w", err)
	}

	return len(fragments), info.Size(), len(pages), nil
}

// Reset wipes the vector collection and the document catalog. A subsequent
// query sees an unindexed store, not an error.
func (p *Pipeline) Reset(ctx context.Context) error {
	if err := p.store.Drop(ctx, p.collection); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	if err := p.docs.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear document catalog: %w", err)
	}
	return nil
}
