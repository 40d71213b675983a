package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_SaveAndList(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	path, err := store.Save("report.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("stored content = %q", data)
	}

	// Non-PDF files are excluded from listings.
	if _, err := store.Save("notes.txt", strings.NewReader("text")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "report.pdf" {
		t.Errorf("List() = %v, want only report.pdf", paths)
	}
}

func TestStore_SaveRejectsTraversal(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	path, err := store.Save("../../etc/passwd.pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("Save() escaped uploads directory: %s", path)
	}
}

func TestStore_Clear(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	if _, err := store.Save("a.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List() after Clear = %v, want empty", paths)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"with directory", "dir/report.pdf", "report.pdf"},
		{"traversal", "../../secret.pdf", "secret.pdf"},
		{"windows separators", `c:\temp\file.pdf`, "c__temp_file.pdf"},
		{"unsafe characters", "my:file?.pdf", "my_file_.pdf"},
		{"spaces kept", "annual report 2024.pdf", "annual report 2024.pdf"},
		{"dot only", ".", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
