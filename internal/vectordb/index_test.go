package vectordb

import (
	"context"
	"math"
	"testing"
)

// unit returns a normalized copy of v.
func unit(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x * x)
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := NewIndex("", "test_documents", 4)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return ix
}

func rec(vectorID, docID string, chunkIndex int, docType DocumentType, text string, embedding []float32) Record {
	return Record{
		VectorID:  vectorID,
		Embedding: embedding,
		Payload: Payload{
			DocumentID: docID,
			ChunkIndex: chunkIndex,
			Type:       docType,
			Source:     "test",
			Text:       text,
		},
	}
}

func TestUpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	err := ix.Upsert(ctx, []Record{
		rec("doc1_0", "doc1", 0, DocTypeDestinationInfo, "Göbeklitepe, the oldest temple complex", unit([]float32{1, 0.1, 0, 0})),
		rec("doc2_0", "doc2", 0, DocTypeGeneral, "hotels and lodging in the region", unit([]float32{0, 0, 1, 0.1})),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := ix.Search(ctx, unit([]float32{1, 0, 0, 0}), 5, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].VectorID != "doc1_0" {
		t.Errorf("expected doc1_0 ranked first, got %s", results[0].VectorID)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted by descending score")
	}
	if results[0].Payload.DocumentID != "doc1" || results[0].Payload.ChunkIndex != 0 {
		t.Errorf("payload not round-tripped: %+v", results[0].Payload)
	}
}

func TestSearchLimit(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, rec(vectorID("d", i), "d", i, DocTypeGeneral, "chunk", unit([]float32{1, float32(i), 0, 0})))
	}
	if err := ix.Upsert(ctx, records); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := ix.Search(ctx, unit([]float32{1, 0, 0, 0}), 3, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("limit=3: got %d results", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at position %d", i)
		}
	}
}

func TestSearchTieBreakByInsertionOrder(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	// chromem's internal result order for equal scores depends on map
	// iteration, so several equal-score records plus repeated queries are
	// needed to exercise the re-sort.
	same := unit([]float32{1, 1, 0, 0})
	var records []Record
	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		records = append(records, rec(n+"_0", n, 0, DocTypeGeneral, "inserted as "+n, same))
	}
	if err := ix.Upsert(ctx, records); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	want := []string{"a_0", "b_0", "c_0", "d_0", "e_0", "f_0"}
	for iter := 0; iter < 50; iter++ {
		results, err := ix.Search(ctx, same, len(want), nil)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != len(want) {
			t.Fatalf("iteration %d: got %d results, want %d", iter, len(results), len(want))
		}
		for i, w := range want {
			if results[i].VectorID != w {
				t.Fatalf("iteration %d, position %d: got %s, want %s", iter, i, results[i].VectorID, w)
			}
		}
	}
}

func TestSearchTypeFilter(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	if err := ix.Upsert(ctx, []Record{
		rec("r_0", "r", 0, DocTypeRoute, "route between cities", unit([]float32{1, 0, 0, 0})),
		rec("g_0", "g", 0, DocTypeGeneral, "general info", unit([]float32{1, 0.1, 0, 0})),
		rec("r2_0", "r2", 0, DocTypeRoute, "another route", unit([]float32{0.9, 0, 0.1, 0})),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	routeType := DocTypeRoute
	results, err := ix.Search(ctx, unit([]float32{1, 0, 0, 0}), 10, &Filter{Type: &routeType})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 route results, got %d", len(results))
	}
	for _, r := range results {
		if r.Payload.Type != DocTypeRoute {
			t.Errorf("filter leaked type %s", r.Payload.Type)
		}
	}
}

func TestDeleteByDocumentIsTotal(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	if err := ix.Upsert(ctx, []Record{
		rec("keep_0", "keep", 0, DocTypeGeneral, "kept chunk", unit([]float32{0, 1, 0, 0})),
		rec("gone_0", "gone", 0, DocTypeGeneral, "first deleted chunk", unit([]float32{1, 0, 0, 0})),
		rec("gone_1", "gone", 1, DocTypeGeneral, "second deleted chunk", unit([]float32{1, 0.1, 0, 0})),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := ix.DeleteByDocument(ctx, "gone"); err != nil {
		t.Fatalf("DeleteByDocument: %v", err)
	}

	// No query, with or without filter, may still surface the document.
	for _, q := range [][]float32{unit([]float32{1, 0, 0, 0}), unit([]float32{0, 1, 0, 0})} {
		results, err := ix.Search(ctx, q, 10, nil)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		for _, r := range results {
			if r.Payload.DocumentID == "gone" {
				t.Errorf("deleted document still visible via %s", r.VectorID)
			}
		}
	}
	if got := ix.Count(); got != 1 {
		t.Errorf("expected 1 remaining vector, got %d", got)
	}
}

func TestUpsertFailureRestoresPriorRecords(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	v := unit([]float32{1, 0, 0, 0})
	if err := ix.Upsert(ctx, []Record{
		rec("a_0", "a", 0, DocTypeGeneral, "original text", v),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// A record with an empty vector id is rejected by the underlying
	// store, failing the batch after the overwrite may have applied.
	err := ix.Upsert(ctx, []Record{
		rec("a_0", "a", 0, DocTypeGeneral, "overwritten text", v),
		rec("", "b", 0, DocTypeGeneral, "bad record", v),
	})
	if err == nil {
		t.Fatal("expected upsert error")
	}

	results, err := ix.Search(ctx, v, 5, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 record after failed upsert, got %d", len(results))
	}
	if results[0].VectorID != "a_0" || results[0].Text != "original text" {
		t.Errorf("prior record not restored: %+v", results[0])
	}
}

func TestUpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	ix := newTestIndex(t)

	err := ix.Upsert(ctx, []Record{
		rec("bad_0", "bad", 0, DocTypeGeneral, "wrong dims", []float32{1, 0}),
	})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestEnsureCollectionDimensionConflict(t *testing.T) {
	dir := t.TempDir()

	ix, err := NewIndex(dir, "test_documents", 4)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	_ = ix

	if _, err := NewIndex(dir, "test_documents", 8); err == nil {
		t.Fatal("expected configuration error for dimensionality change")
	}
	if _, err := NewIndex(dir, "test_documents", 4); err != nil {
		t.Fatalf("reopening with matching dimensionality: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	var nilIndex *Index
	h := nilIndex.Health(ctx)
	if h.Connected {
		t.Error("nil index must report disconnected")
	}

	ix := newTestIndex(t)
	if err := ix.Upsert(ctx, []Record{
		rec("d_0", "d", 0, DocTypeGeneral, "chunk", unit([]float32{1, 0, 0, 0})),
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	h = ix.Health(ctx)
	if !h.Connected {
		t.Error("expected connected")
	}
	if h.Vectors != 1 {
		t.Errorf("expected 1 vector, got %d", h.Vectors)
	}
	if h.Collection != "test_documents" {
		t.Errorf("unexpected collection name %q", h.Collection)
	}
}

func vectorID(doc string, chunk int) string {
	return doc + "_" + string(rune('0'+chunk))
}
