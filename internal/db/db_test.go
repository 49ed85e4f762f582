package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMemoryEnforcesForeignKeys(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	var fk int
	if err := d.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	var fk int
	if err := d.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var journal string
	if err := d.QueryRow(`PRAGMA journal_mode`).Scan(&journal); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if !strings.EqualFold(journal, "wal") {
		t.Errorf("journal_mode = %s, want wal", journal)
	}
}

func TestDeleteDocumentCascadesToChunks(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO documents (id, title, content) VALUES ('doc1', 't', 'c')`); err != nil {
		t.Fatalf("insert document: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO document_chunks (vector_id, document_id, chunk_index, chunk_text)
		VALUES ('doc1_0', 'doc1', 0, 'c')`); err != nil {
		t.Fatalf("insert chunk: %v", err)
	}

	if _, err := d.Exec(`DELETE FROM documents WHERE id = 'doc1'`); err != nil {
		t.Fatalf("delete document: %v", err)
	}

	var chunks int
	if err := d.QueryRow(`SELECT COUNT(*) FROM document_chunks WHERE document_id = 'doc1'`).Scan(&chunks); err != nil {
		t.Fatalf("counting chunks: %v", err)
	}
	if chunks != 0 {
		t.Errorf("cascade left %d chunk rows", chunks)
	}
}
