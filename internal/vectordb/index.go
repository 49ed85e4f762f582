package vectordb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

// tieBreakWindow is how many extra candidates are fetched beyond the
// requested limit so that equal-score results at the cutoff can be
// ordered by insertion sequence before truncation.
const tieBreakWindow = 16

// Index is a collection abstraction over chromem-go. Upserts and deletes
// hold a write lock so a concurrent search never observes a half-written
// or half-deleted document.
type Index struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	dims       int
	dir        string // empty for in-memory indexes
	nextSeq    uint64
}

// indexMeta is the sidecar state persisted next to the chromem data.
// Dimensionality is fixed at collection creation; a later mismatch is a
// configuration error, not a per-request one.
type indexMeta struct {
	Collection string `json:"collection"`
	Dimensions int    `json:"dimensions"`
	NextSeq    uint64 `json:"next_seq"`
}

// NewIndex opens (or creates) a persistent index in dir. Pass an empty dir
// for a purely in-memory index, which is what tests use.
func NewIndex(dir, collection string, dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("vectordb: dimensions must be positive, got %d", dimensions)
	}

	var (
		db  *chromem.DB
		err error
	)
	if dir == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dir, true)
		if err != nil {
			return nil, fmt.Errorf("vectordb: opening persistent store: %w", err)
		}
	}

	ix := &Index{db: db, name: collection, dims: dimensions, dir: dir, nextSeq: 1}
	if err := ix.EnsureCollection(dimensions); err != nil {
		return nil, err
	}
	return ix, nil
}

// EnsureCollection creates the collection if absent and verifies its
// dimensionality if present. It is idempotent.
func (ix *Index) EnsureCollection(dimensions int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if meta, ok, err := ix.readMeta(); err != nil {
		return err
	} else if ok {
		if meta.Dimensions != dimensions {
			return fmt.Errorf("vectordb: collection %q exists with %d dimensions, configured for %d",
				ix.name, meta.Dimensions, dimensions)
		}
		ix.nextSeq = meta.NextSeq
	}

	// Records always carry pre-computed embeddings, so no embedding
	// function is attached to the collection.
	col, err := ix.db.GetOrCreateCollection(ix.name, nil, nil)
	if err != nil {
		return fmt.Errorf("vectordb: creating collection %q: %w", ix.name, err)
	}
	ix.collection = col
	ix.dims = dimensions

	return ix.writeMeta()
}

// Upsert writes or overwrites records by vector id. The call is atomic
// from a searcher's perspective: either all records become visible or,
// on failure, none of the call's writes are observed by a search that
// starts afterwards.
func (ix *Index) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		if len(rec.Embedding) != ix.dims {
			return fmt.Errorf("vectordb: record %s has %d dimensions, collection %q expects %d",
				rec.VectorID, len(rec.Embedding), ix.name, ix.dims)
		}
		docs[i] = chromem.Document{
			ID:        rec.VectorID,
			Content:   rec.Payload.Text,
			Embedding: rec.Embedding,
			Metadata:  payloadToMap(rec.Payload, ix.nextSeq+uint64(i)),
		}
	}

	// Snapshot records the batch overwrites so a failed add can restore
	// them instead of leaving the prior versions deleted.
	var prior []chromem.Document
	for _, rec := range records {
		if doc, err := ix.collection.GetByID(ctx, rec.VectorID); err == nil {
			prior = append(prior, doc)
		}
	}

	if err := ix.collection.AddDocuments(ctx, docs, 1); err != nil {
		// Roll back any partially applied writes and restore the
		// overwritten records so searchers see the pre-call state.
		// The rollback runs on a fresh context in case the caller's
		// was the reason for the failure.
		ids := make([]string, len(records))
		for i, rec := range records {
			ids[i] = rec.VectorID
		}
		rbCtx := context.Background()
		_ = ix.collection.Delete(rbCtx, nil, nil, ids...)
		if len(prior) > 0 {
			_ = ix.collection.AddDocuments(rbCtx, prior, 1)
		}
		return fmt.Errorf("vectordb: upsert: %w", err)
	}

	ix.nextSeq += uint64(len(records))
	return ix.writeMeta()
}

// Search returns up to limit results ordered by descending similarity.
// Equal scores are broken by insertion sequence so rankings stay
// reproducible.
func (ix *Index) Search(ctx context.Context, queryVector []float32, limit int, filter *Filter) ([]SearchResult, error) {
	if len(queryVector) != ix.dims {
		return nil, fmt.Errorf("vectordb: query vector has %d dimensions, collection %q expects %d",
			len(queryVector), ix.name, ix.dims)
	}
	if limit <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}

	// chromem requires nResults <= collection size.
	fetch := limit + tieBreakWindow
	if fetch > count {
		fetch = count
	}

	results, err := ix.collection.QueryEmbedding(ctx, queryVector, fetch, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("vectordb: query: %w", err)
	}

	type scoredResult struct {
		res SearchResult
		seq uint64
	}
	scored := make([]scoredResult, len(results))
	for i, r := range results {
		payload, seq := mapToPayload(r.Metadata)
		scored[i] = scoredResult{
			res: SearchResult{
				VectorID: r.ID,
				Text:     r.Content,
				Score:    r.Similarity,
				Payload:  payload,
			},
			seq: seq,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].res.Score != scored[j].res.Score {
			return scored[i].res.Score > scored[j].res.Score
		}
		return scored[i].seq < scored[j].seq
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]SearchResult, len(scored))
	for i, s := range scored {
		out[i] = s.res
	}
	return out, nil
}

// DeleteByDocument removes every record whose payload document id matches.
// The write lock makes the removal all-or-nothing for searchers: no search
// issued after a successful delete returns a record of that document.
func (ix *Index) DeleteByDocument(ctx context.Context, documentID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.collection.Count() == 0 {
		return nil
	}
	if err := ix.collection.Delete(ctx, map[string]string{"document_id": documentID}, nil); err != nil {
		return fmt.Errorf("vectordb: delete document %s: %w", documentID, err)
	}
	return nil
}

// Health is a non-throwing status probe: it reports Connected=false
// instead of raising when the index is unusable.
func (ix *Index) Health(ctx context.Context) Health {
	if ix == nil || ix.collection == nil {
		return Health{Connected: false, Message: "vector index not initialized"}
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return Health{
		Connected:  true,
		Collection: ix.name,
		Vectors:    ix.collection.Count(),
	}
}

// Count returns the number of vectors in the collection.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.collection.Count()
}

func (ix *Index) metaPath() string {
	return filepath.Join(ix.dir, "collection.json")
}

func (ix *Index) readMeta() (indexMeta, bool, error) {
	if ix.dir == "" {
		return indexMeta{}, false, nil
	}
	data, err := os.ReadFile(ix.metaPath())
	if os.IsNotExist(err) {
		return indexMeta{}, false, nil
	}
	if err != nil {
		return indexMeta{}, false, fmt.Errorf("vectordb: reading collection meta: %w", err)
	}
	var meta indexMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return indexMeta{}, false, fmt.Errorf("vectordb: parsing collection meta: %w", err)
	}
	return meta, true, nil
}

func (ix *Index) writeMeta() error {
	if ix.dir == "" {
		return nil
	}
	data, err := json.Marshal(indexMeta{Collection: ix.name, Dimensions: ix.dims, NextSeq: ix.nextSeq})
	if err != nil {
		return fmt.Errorf("vectordb: encoding collection meta: %w", err)
	}
	if err := os.WriteFile(ix.metaPath(), data, 0o644); err != nil {
		return fmt.Errorf("vectordb: writing collection meta: %w", err)
	}
	return nil
}

// payloadToMap flattens a Payload into chromem's string metadata. The seq
// field records insertion order for deterministic tie-breaking.
func payloadToMap(p Payload, seq uint64) map[string]string {
	return map[string]string{
		"document_id": p.DocumentID,
		"chunk_index": strconv.Itoa(p.ChunkIndex),
		"type":        string(p.Type),
		"source":      p.Source,
		"text":        p.Text,
		"seq":         strconv.FormatUint(seq, 10),
	}
}

// mapToPayload is the inverse of payloadToMap.
func mapToPayload(m map[string]string) (Payload, uint64) {
	chunkIndex, _ := strconv.Atoi(m["chunk_index"])
	seq, _ := strconv.ParseUint(m["seq"], 10, 64)
	return Payload{
		DocumentID: m["document_id"],
		ChunkIndex: chunkIndex,
		Type:       DocumentType(m["type"]),
		Source:     m["source"],
		Text:       m["text"],
	}, seq
}

// buildWhereClause converts a Filter to a chromem where clause. Filtering is
// exact field equality; no substring matching is involved.
func buildWhereClause(filter *Filter) map[string]string {
	if filter == nil {
		return nil
	}
	where := make(map[string]string)
	if filter.Type != nil {
		where["type"] = string(*filter.Type)
	}
	if len(where) == 0 {
		return nil
	}
	return where
}
