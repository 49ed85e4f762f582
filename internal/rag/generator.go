package rag

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mezotravel/backend/internal/llm"
)

// Strategy is one way of producing an answer. Strategies are tried in
// order; later entries are progressively cheaper and more generic.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, query, language string, messages []llm.Message) (string, error)
}

// GenerationResult is a produced answer plus how it was produced.
// Degraded means the answer did not come from the primary strategy.
type GenerationResult struct {
	Text     string
	Strategy string
	Degraded bool
}

// Generator runs an ordered strategy list. It never returns an error:
// a failing strategy is logged and the next one is tried, and the
// final fallback always yields text.
type Generator struct {
	strategies []Strategy
}

func NewGenerator(strategies ...Strategy) *Generator {
	return &Generator{strategies: strategies}
}

func (g *Generator) Generate(ctx context.Context, query, language string, messages []llm.Message) GenerationResult {
	for i, s := range g.strategies {
		text, err := s.Generate(ctx, query, language, messages)
		if err != nil {
			log.Printf("[rag] strategy %s failed (%v), trying next", s.Name(), err)
			continue
		}
		return GenerationResult{Text: text, Strategy: s.Name(), Degraded: i > 0}
	}
	// The rule strategy can miss and a generator can be built without a
	// default strategy; keep the no-error contract regardless.
	return GenerationResult{Text: genericResponse(language), Strategy: "default", Degraded: true}
}

// ProviderStrategy answers through an LLM provider with a bounded timeout.
type ProviderStrategy struct {
	Provider llm.Provider
	Model    string
	Timeout  time.Duration
}

func (s *ProviderStrategy) Name() string {
	return s.Provider.Name()
}

func (s *ProviderStrategy) Generate(ctx context.Context, _, _ string, messages []llm.Message) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	resp, err := s.Provider.Complete(ctx, llm.CompletionRequest{
		Model:       s.Model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", errors.New("provider returned empty completion")
	}
	return resp.Content, nil
}

var errNoRuleMatch = errors.New("no rule matched")

// RuleStrategy matches keywords in the visitor's original question and
// answers from a small canned set. It fails when nothing matches so
// the next strategy gets a chance.
type RuleStrategy struct{}

type cannedRule struct {
	keywords []string
	tr       string
	en       string
}

var cannedRules = []cannedRule{
	{
		keywords: []string{"göbeklitepe", "gobeklitepe"},
		tr:       "Göbeklitepe, dünyanın en eski tapınak kompleksidir. M.Ö. 10.000 yıllarına dayanan bu yapı, Şanlıurfa'da bulunur. UNESCO Dünya Mirası listesindedir.",
		en:       "Göbeklitepe is the world's oldest known temple complex. Dating back to 10,000 BC, it is located in Şanlıurfa and listed as a UNESCO World Heritage Site.",
	},
	{
		keywords: []string{"otel", "konaklama", "hotel", "accommodation"},
		tr:       "Bölgede birçok otel seçeneği bulunmaktadır. Şanlıurfa'da Hilton, Dedeman gibi büyük oteller var. Mardin'de butik taş evler popülerdir.",
		en:       "The region offers many hotels. Şanlıurfa has large hotels such as Hilton and Dedeman, while boutique stone houses are popular in Mardin.",
	},
	{
		keywords: []string{"yemek", "ne yenir", "food", "restaurant"},
		tr:       "GAP bölgesi zengin mutfağıyla ünlüdür. Urfa kebabı, çiğ köfte, Mardin'in kibe'si, Gaziantep baklavası mutlaka denenmeli lezzetlerdir.",
		en:       "The GAP region is famous for its rich cuisine. Urfa kebab, çiğ köfte, Mardin's kibbeh and Gaziantep baklava are must-try dishes.",
	},
	{
		keywords: []string{"ulaşım", "ulasim", "transport", "how to get"},
		tr:       "Bölgeye havayolu ile Şanlıurfa, Gaziantep veya Diyarbakır havalimanlarından ulaşabilirsiniz. Şehirler arası otobüs seferleri de mevcuttur.",
		en:       "You can reach the region by air via the Şanlıurfa, Gaziantep or Diyarbakır airports. Intercity bus services are also available.",
	},
}

func (s *RuleStrategy) Name() string { return "rules" }

func (s *RuleStrategy) Generate(_ context.Context, query, language string, _ []llm.Message) (string, error) {
	q := strings.ToLower(query)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				if language == "en" {
					return rule.en, nil
				}
				return rule.tr, nil
			}
		}
	}
	return "", errNoRuleMatch
}

// DefaultStrategy always succeeds with a generic greeting, terminating
// the fallback chain.
type DefaultStrategy struct{}

func (s *DefaultStrategy) Name() string { return "default" }

func (s *DefaultStrategy) Generate(_ context.Context, _, language string, _ []llm.Message) (string, error) {
	return genericResponse(language), nil
}

func genericResponse(language string) string {
	if language == "en" {
		return "The GAP region awaits you with its historical and cultural riches. How can I help you?"
	}
	return "GAP bölgesi, tarihi ve kültürel zenginlikleriyle sizi bekliyor. Size nasıl yardımcı olabilirim?"
}
