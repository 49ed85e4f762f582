package llm

import (
	"fmt"
	"os"
	"time"
)

// New creates a Provider for the given provider name. Ollama providers talk
// to the configured host; OpenAI reads its API key from the environment.
func New(provider, model, ollamaHost string, timeout time.Duration) (Provider, error) {
	switch provider {
	case "ollama":
		return NewOllamaProvider(ollamaHost, model, timeout), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return NewOpenAIProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
