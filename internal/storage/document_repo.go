package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docchat/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document catalog operations.
type DocumentStore interface {
	// Insert records one ingested document. Sets record.ID on success.
	Insert(ctx context.Context, record *DocumentRecord) error
	// ListAll returns all catalog entries ordered by ingestion time.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
	// Count returns the number of cataloged documents.
	Count(ctx context.Context) (int, error)
	// DeleteAll wipes the catalog. Used only by a full index reset.
	DeleteAll(ctx context.Context) error
}

// DocumentRepo provides methods for document catalog operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert records one ingested document. Sets record.ID on success.
func (r *DocumentRepo) Insert(ctx context.Context, record *DocumentRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (doc_id, name, pages, size_bytes, fragments) VALUES (?, ?, ?, ?, ?)",
		record.DocID, record.Name, record.Pages, record.SizeBytes, record.Fragments,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted document id: %w", err)
	}
	record.ID = id
	return nil
}

// ListAll returns all catalog entries ordered by ingestion time.
// Returns an empty slice when the catalog is empty (not an error).
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, doc_id, name, pages, size_bytes, fragments, ingested_at FROM documents ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []DocumentRecord
	for rows.Next() {
		var record DocumentRecord
		if err := rows.Scan(&record.ID, &record.DocID, &record.Name, &record.Pages,
			&record.SizeBytes, &record.Fragments, &record.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Count returns the number of cataloged documents.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// DeleteAll wipes the catalog.
func (r *DocumentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
