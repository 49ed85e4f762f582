package destinations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestListSeededDestinations(t *testing.T) {
	store := setupTestStore(t)

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("expected 8 seeded destinations, got %d", len(all))
	}
	// Rating descending: Nemrut Dağı (4.9) leads the catalogue.
	if all[0].Name != "Nemrut Dağı" {
		t.Errorf("first destination = %s, want Nemrut Dağı", all[0].Name)
	}
	for _, d := range all {
		if len(d.Tags) == 0 {
			t.Errorf("%s has no tags", d.Name)
		}
	}
}

func TestListByCategory(t *testing.T) {
	store := setupTestStore(t)

	religious, err := store.List(context.Background(), "Dini")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(religious) != 1 || religious[0].Name != "Balıklıgöl" {
		t.Errorf("unexpected Dini destinations: %+v", religious)
	}

	none, err := store.List(context.Background(), "Plaj")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no Plaj destinations, got %d", len(none))
	}
}

func TestGetDestination(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	got, err := store.Get(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != all[0].Name || len(got.Tags) != len(all[0].Tags) {
		t.Errorf("Get returned %+v, want %+v", got, all[0])
	}

	if _, err := store.Get(ctx, "no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecommendScoresOverlap(t *testing.T) {
	store := setupTestStore(t)

	recs, err := store.Recommend(context.Background(), []string{"arkeoloji", "tarih"}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	// Göbeklitepe carries both requested tags; nothing else does.
	if recs[0].Name != "Göbeklitepe" {
		t.Errorf("top recommendation = %s, want Göbeklitepe", recs[0].Name)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].MatchScore > recs[i-1].MatchScore {
			t.Errorf("recommendations not sorted at %d", i)
		}
	}
	for _, r := range recs {
		if r.MatchScore <= 0 || r.MatchScore > 1 {
			t.Errorf("%s score %f out of range", r.Name, r.MatchScore)
		}
	}
}

func TestRecommendExcludesUnrelated(t *testing.T) {
	store := setupTestStore(t)

	recs, err := store.Recommend(context.Background(), []string{"kayak"}, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no matches for unrelated interest, got %d", len(recs))
	}
}

func TestRecommendHonorsLimit(t *testing.T) {
	store := setupTestStore(t)

	recs, err := store.Recommend(context.Background(), []string{"tarih"}, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(recs))
	}
}

// HTTP handler tests

func newTestRouter(store *Store) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r
}

func TestRoute_ListDestinations(t *testing.T) {
	r := newTestRouter(setupTestStore(t))

	req := httptest.NewRequest("GET", "/api/destinations?category=Tarihi", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var dests []Destination
	if err := json.Unmarshal(w.Body.Bytes(), &dests); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, d := range dests {
		if d.Category != "Tarihi" {
			t.Errorf("%s has category %s", d.Name, d.Category)
		}
	}
	if len(dests) == 0 {
		t.Error("expected Tarihi destinations")
	}
}

func TestRoute_GetDestination(t *testing.T) {
	store := setupTestStore(t)
	r := newTestRouter(store)

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/destinations/"+all[0].ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var dest Destination
	if err := json.Unmarshal(w.Body.Bytes(), &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.ID != all[0].ID {
		t.Errorf("returned id %s, want %s", dest.ID, all[0].ID)
	}

	req = httptest.NewRequest("GET", "/api/destinations/no-such-id", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != 404 {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRoute_Recommendations(t *testing.T) {
	r := newTestRouter(setupTestStore(t))

	body := `{"user_id":"user123","interests":["tarih","arkeoloji"],"max_results":3}`
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UserID != "user123" {
		t.Errorf("user_id = %s", resp.UserID)
	}
	if len(resp.Recommendations) == 0 || len(resp.Recommendations) > 3 {
		t.Errorf("unexpected recommendation count %d", len(resp.Recommendations))
	}
}

func TestRoute_RecommendationsValidation(t *testing.T) {
	r := newTestRouter(setupTestStore(t))

	for _, body := range []string{
		`{"user_id":"u"}`,
		`{"user_id":"u","interests":["tarih"],"max_results":21}`,
		`{`,
	} {
		req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != 400 {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}
