package rag

import (
	"fmt"
	"strings"

	"github.com/mezotravel/backend/internal/llm"
)

const systemPrompt = `Sen Mezopotamya (GAP) bölgesi turizm asistanısın. Göbeklitepe, Balıklıgöl, Nemrut Dağı, Harran, Hasankeyf, Mardin ve Diyarbakır gibi bölgedeki yerler hakkında ziyaretçilere yardımcı olursun. Kısa ve öz cevap ver.`

// PromptAssembler builds provider-agnostic message lists for the three
// generation tasks. DefaultLanguage is used when a request does not name one.
type PromptAssembler struct {
	DefaultLanguage string
}

// ItineraryPreferences describe what the visitor wants from a trip plan.
type ItineraryPreferences struct {
	Interests []string `json:"interests"`
	Duration  int      `json:"duration"`
	Locations []string `json:"locations,omitempty"`
}

// RoutePlan names the endpoints and stops of a route to describe.
type RoutePlan struct {
	Start     string   `json:"start_location"`
	End       string   `json:"end_location"`
	Waypoints []string `json:"waypoints,omitempty"`
}

// Chat builds the prompt for a free-form visitor question. When no
// retrieved context is available the model is told to answer from
// general knowledge of the region instead of silently hallucinating
// a source-backed answer.
func (a *PromptAssembler) Chat(query string, contexts []string, language string) []llm.Message {
	var b strings.Builder
	if len(contexts) > 0 {
		b.WriteString("Aşağıdaki bilgileri kullanarak soruyu cevapla:\n\n")
		writeContexts(&b, contexts)
	} else {
		b.WriteString("Elinde belge yok; bölge hakkındaki genel bilginle cevapla.\n\n")
	}
	b.WriteString("Soru: ")
	b.WriteString(query)
	b.WriteString("\n\n")
	b.WriteString(a.languageInstruction(language))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// Itinerary builds the prompt for a day-by-day trip plan.
func (a *PromptAssembler) Itinerary(prefs ItineraryPreferences, contexts []string, language string) []llm.Message {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d günlük bir gezi programı hazırla.\n", prefs.Duration))
	if len(prefs.Interests) > 0 {
		b.WriteString("İlgi alanları: " + strings.Join(prefs.Interests, ", ") + "\n")
	}
	if len(prefs.Locations) > 0 {
		b.WriteString("Gezilecek yerler: " + strings.Join(prefs.Locations, ", ") + "\n")
	}
	b.WriteString("\n")
	if len(contexts) > 0 {
		b.WriteString("Yararlanabileceğin bilgiler:\n\n")
		writeContexts(&b, contexts)
	}
	b.WriteString("Her gün için sabah, öğle ve akşam önerileri ver.\n")
	b.WriteString(a.languageInstruction(language))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// Route builds the prompt for a route description between two places.
func (a *PromptAssembler) Route(plan RoutePlan, contexts []string, language string) []llm.Message {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s ile %s arasında bir rota tarif et.\n", plan.Start, plan.End))
	if len(plan.Waypoints) > 0 {
		b.WriteString("Uğranacak duraklar: " + strings.Join(plan.Waypoints, ", ") + "\n")
	}
	b.WriteString("\n")
	if len(contexts) > 0 {
		b.WriteString("Yararlanabileceğin bilgiler:\n\n")
		writeContexts(&b, contexts)
	}
	b.WriteString("Yol üzerindeki görülmesi gereken yerleri ve tahmini süreleri belirt.\n")
	b.WriteString(a.languageInstruction(language))

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

func writeContexts(b *strings.Builder, contexts []string) {
	for i, c := range contexts {
		b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, c))
	}
	b.WriteString("\n")
}

func (a *PromptAssembler) languageInstruction(language string) string {
	if language == "" {
		language = a.DefaultLanguage
	}
	switch language {
	case "en":
		return "Answer in English."
	case "tr", "":
		return "Cevabını Türkçe ver."
	default:
		return fmt.Sprintf("Dil: %s", language)
	}
}
