package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/db"
	"github.com/mezotravel/backend/internal/llm"
	"github.com/mezotravel/backend/internal/rag"
	"github.com/mezotravel/backend/internal/vectordb"
)

type stubEmbedder struct {
	fail bool
}

func (e *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if e.fail {
		return nil, fmt.Errorf("%w: embedder down", apperr.ErrServiceUnavailable)
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int { return 4 }
func (e *stubEmbedder) Name() string    { return "stub" }

type stubProvider struct {
	reply string
}

func (p *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: p.reply}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func setupPlanner(t *testing.T, embedder *stubEmbedder) (*Store, *rag.Service) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	index, err := vectordb.NewIndex("", "planner", 4)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if err := index.EnsureCollection(4); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}

	generator := rag.NewGenerator(
		&rag.ProviderStrategy{Provider: &stubProvider{reply: "Gün 1: Göbeklitepe."}, Timeout: time.Second},
		&rag.DefaultStrategy{},
	)
	svc := rag.NewService(
		rag.NewRetriever(embedder, index),
		&rag.PromptAssembler{DefaultLanguage: "tr"},
		generator,
		5,
	)
	return NewStore(database), svc
}

func TestSaveAndListItineraries(t *testing.T) {
	store, _ := setupPlanner(t, &stubEmbedder{})
	ctx := context.Background()

	prefs := rag.ItineraryPreferences{Interests: []string{"tarih"}, Duration: 3}
	it, err := store.SaveItinerary(ctx, "3 günlük tarih programı", "Gün 1: ...", prefs)
	if err != nil {
		t.Fatalf("SaveItinerary: %v", err)
	}
	if it.ID == "" {
		t.Error("expected non-empty ID")
	}

	items, err := store.ListItineraries(ctx, 10)
	if err != nil {
		t.Fatalf("ListItineraries: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(items))
	}
	if items[0].Preferences.Duration != 3 || len(items[0].Preferences.Interests) != 1 {
		t.Errorf("preferences not round-tripped: %+v", items[0].Preferences)
	}
}

func TestSaveAndListRoutes(t *testing.T) {
	store, _ := setupPlanner(t, &stubEmbedder{})
	ctx := context.Background()

	rt, err := store.SaveRoute(ctx, "Şanlıurfa - Mardin", "Önce...", "Şanlıurfa", "Mardin", []string{"Harran"})
	if err != nil {
		t.Fatalf("SaveRoute: %v", err)
	}
	if rt.ID == "" {
		t.Error("expected non-empty ID")
	}

	items, err := store.ListRoutes(ctx, 10)
	if err != nil {
		t.Fatalf("ListRoutes: %v", err)
	}
	if len(items) != 1 || len(items[0].Waypoints) != 1 {
		t.Fatalf("unexpected routes: %+v", items)
	}
	if items[0].StartLocation != "Şanlıurfa" || items[0].EndLocation != "Mardin" {
		t.Errorf("endpoints not round-tripped: %+v", items[0])
	}
}

// HTTP handler tests

func newTestRouter(store *Store, svc *rag.Service) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, store, svc)
	return r
}

func TestRoute_GenerateItinerary(t *testing.T) {
	store, svc := setupPlanner(t, &stubEmbedder{})
	r := newTestRouter(store, svc)

	body := `{"interests":["tarih","arkeoloji"],"duration":3,"locations":["Şanlıurfa"],"language":"tr"}`
	req := httptest.NewRequest("POST", "/api/itineraries/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 201 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp itineraryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Itinerary == nil || resp.Itinerary.Description == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Generated plan must be persisted.
	items, err := store.ListItineraries(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListItineraries: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 stored itinerary, got %d", len(items))
	}
}

func TestRoute_GenerateItineraryValidation(t *testing.T) {
	store, svc := setupPlanner(t, &stubEmbedder{})
	r := newTestRouter(store, svc)

	for _, body := range []string{
		`{"interests":["tarih"]}`,
		`{"duration":2}`,
		`{`,
	} {
		req := httptest.NewRequest("POST", "/api/itineraries/generate", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != 400 {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestRoute_GenerateItineraryUnavailable(t *testing.T) {
	store, svc := setupPlanner(t, &stubEmbedder{fail: true})
	r := newTestRouter(store, svc)

	body := `{"interests":["tarih"],"duration":2}`
	req := httptest.NewRequest("POST", "/api/itineraries/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 503 {
		t.Fatalf("status = %d, want 503: %s", w.Code, w.Body.String())
	}

	// Nothing persisted on failure.
	items, _ := store.ListItineraries(context.Background(), 10)
	if len(items) != 0 {
		t.Errorf("expected no stored itineraries, got %d", len(items))
	}
}

func TestRoute_GenerateRoute(t *testing.T) {
	store, svc := setupPlanner(t, &stubEmbedder{})
	r := newTestRouter(store, svc)

	body := `{"start_location":"Şanlıurfa","end_location":"Mardin","waypoints":["Harran"]}`
	req := httptest.NewRequest("POST", "/api/routes/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 201 {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp routeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Route == nil || resp.Route.Name != "Şanlıurfa - Mardin" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Route.StartLocation != "Şanlıurfa" || resp.Route.EndLocation != "Mardin" {
		t.Errorf("endpoints missing from response: %+v", resp.Route)
	}
}

func TestRoute_GenerateRouteValidation(t *testing.T) {
	store, svc := setupPlanner(t, &stubEmbedder{})
	r := newTestRouter(store, svc)

	req := httptest.NewRequest("POST", "/api/routes/generate", strings.NewReader(`{"start_location":"A"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
