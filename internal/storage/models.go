package storage

import "time"

// DocumentRecord is the catalog entry for one successfully ingested document.
// Read-only after ingestion; destroyed only by a full index reset.
type DocumentRecord struct {
	ID int64 // Auto-increment row id, unique across sessions
	// DocID is the batch-local document id assigned at ingestion time,
	// restarting at 1 for each ingestion call. Not stable across sessions.
	DocID     int
	Name      string // Display name (original filename)
	Pages     int    // Pages that yielded extractable text
	SizeBytes int64  // Source file size
	Fragments int    // Fragments indexed for this document
	IngestedAt time.Time
}
