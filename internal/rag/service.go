package rag

import (
	"context"
	"fmt"
	"log"

	"github.com/mezotravel/backend/internal/apperr"
	"github.com/mezotravel/backend/internal/vectordb"
)

// Source identifies a document that contributed context to an answer.
type Source struct {
	DocumentID string               `json:"document_id"`
	Type       vectordb.DocumentType `json:"type"`
	Source     string               `json:"source,omitempty"`
	Score      float32              `json:"score"`
}

// Answer is a generated response plus the sources that informed it.
type Answer struct {
	Text     string   `json:"text"`
	Sources  []Source `json:"sources"`
	Degraded bool     `json:"-"`
}

// Service orchestrates retrieval, prompt assembly and generation. All
// collaborators are explicit; there is no package-level state.
type Service struct {
	retriever *Retriever
	assembler *PromptAssembler
	generator *Generator
	topK      int
}

func NewService(retriever *Retriever, assembler *PromptAssembler, generator *Generator, topK int) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		topK:      topK,
	}
}

// Ready reports whether retrieval-dependent operations can be served.
func (s *Service) Ready(ctx context.Context) bool {
	return s.retriever.Ready(ctx)
}

// AnswerQuery answers a free-form visitor question. Retrieval failure
// degrades to a context-free prompt instead of failing the request;
// generation itself never errors thanks to the fallback chain.
func (s *Service) AnswerQuery(ctx context.Context, query, language string) *Answer {
	results, err := s.retriever.Retrieve(ctx, query, s.topK, nil)
	if err != nil {
		log.Printf("[rag] retrieval failed, answering without context: %v", err)
		results = nil
	}

	messages := s.assembler.Chat(query, contextTexts(results), language)
	gen := s.generator.Generate(ctx, query, language, messages)
	if gen.Degraded {
		log.Printf("[rag] answer produced by fallback strategy %s", gen.Strategy)
	}

	return &Answer{
		Text:     gen.Text,
		Sources:  sourcesOf(results),
		Degraded: gen.Degraded,
	}
}

// PlanItinerary produces a day-by-day trip plan. Unlike AnswerQuery it
// requires working retrieval: a plan without grounding documents is not
// worth returning.
func (s *Service) PlanItinerary(ctx context.Context, prefs ItineraryPreferences, language string) (*Answer, error) {
	query := itineraryQuery(prefs)
	results, err := s.retriever.Retrieve(ctx, query, s.topK, nil)
	if err != nil {
		return nil, fmt.Errorf("itinerary retrieval: %w: %w", apperr.ErrServiceUnavailable, err)
	}

	messages := s.assembler.Itinerary(prefs, contextTexts(results), language)
	gen := s.generator.Generate(ctx, query, language, messages)

	return &Answer{Text: gen.Text, Sources: sourcesOf(results), Degraded: gen.Degraded}, nil
}

// PlanRoute produces a route description between two places, with the
// same retrieval requirement as PlanItinerary.
func (s *Service) PlanRoute(ctx context.Context, plan RoutePlan, language string) (*Answer, error) {
	query := routeQuery(plan)
	results, err := s.retriever.Retrieve(ctx, query, s.topK, nil)
	if err != nil {
		return nil, fmt.Errorf("route retrieval: %w: %w", apperr.ErrServiceUnavailable, err)
	}

	messages := s.assembler.Route(plan, contextTexts(results), language)
	gen := s.generator.Generate(ctx, query, language, messages)

	return &Answer{Text: gen.Text, Sources: sourcesOf(results), Degraded: gen.Degraded}, nil
}

func itineraryQuery(prefs ItineraryPreferences) string {
	q := "gezi programı"
	for _, in := range prefs.Interests {
		q += " " + in
	}
	for _, loc := range prefs.Locations {
		q += " " + loc
	}
	return q
}

func routeQuery(plan RoutePlan) string {
	q := "rota " + plan.Start + " " + plan.End
	for _, wp := range plan.Waypoints {
		q += " " + wp
	}
	return q
}

func contextTexts(results []vectordb.SearchResult) []string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	return texts
}

// sourcesOf deduplicates results by document so a document matched by
// several chunks is reported once, at its best score.
func sourcesOf(results []vectordb.SearchResult) []Source {
	seen := make(map[string]bool, len(results))
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		if seen[r.Payload.DocumentID] {
			continue
		}
		seen[r.Payload.DocumentID] = true
		sources = append(sources, Source{
			DocumentID: r.Payload.DocumentID,
			Type:       r.Payload.Type,
			Source:     r.Payload.Source,
			Score:      r.Score,
		})
	}
	return sources
}
