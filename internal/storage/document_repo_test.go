package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(db); err != nil {
		t.Errorf("Migrate() second run error: %v", err)
	}
}

func TestDocumentRepo_InsertAndList(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	records := []*DocumentRecord{
		{DocID: 1, Name: "report.pdf", Pages: 12, SizeBytes: 1024, Fragments: 40},
		{DocID: 2, Name: "notes.pdf", Pages: 3, SizeBytes: 512, Fragments: 9},
	}
	for _, record := range records {
		if err := repo.Insert(ctx, record); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
		if record.ID == 0 {
			t.Error("Insert() did not set record.ID")
		}
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListAll() returned %d records, want 2", len(got))
	}
	if got[0].Name != "report.pdf" || got[1].Name != "notes.pdf" {
		t.Errorf("ListAll() order = %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].Pages != 12 || got[0].Fragments != 40 || got[0].SizeBytes != 1024 {
		t.Errorf("ListAll() first record = %+v", got[0])
	}
	if got[0].IngestedAt.IsZero() {
		t.Error("ListAll() IngestedAt not populated")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestDocumentRepo_BatchLocalIDsMayRepeat(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	// Two ingestion batches both number their documents from 1.
	first := &DocumentRecord{DocID: 1, Name: "first.pdf", Pages: 1, SizeBytes: 1, Fragments: 1}
	second := &DocumentRecord{DocID: 1, Name: "second.pdf", Pages: 1, SizeBytes: 1, Fragments: 1}

	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	if first.ID == second.ID {
		t.Error("row ids must stay unique even when batch-local doc ids repeat")
	}
}

func TestDocumentRepo_DeleteAll(t *testing.T) {
	repo := NewDocumentRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, &DocumentRecord{DocID: 1, Name: "a.pdf", Pages: 1, SizeBytes: 1, Fragments: 1}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after DeleteAll = %d, want 0", count)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListAll() after DeleteAll returned %d records, want 0", len(got))
	}
}
