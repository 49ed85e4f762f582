package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .mezotravel.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to mezotravel! Let's configure the assistant.")
	fmt.Println()

	cfg := Default()

	providerPrompt := promptui.Select{
		Label: "Select generation provider",
		Items: []string{"ollama", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Generation.Provider = ProviderType(providerStr)
	if cfg.Generation.Provider == ProviderOpenAI {
		cfg.Generation.Model = "gpt-4o-mini"
	}

	embedPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{
			"ollama — all-minilm, 384 dimensions, local",
			"openai — text-embedding-3-small, 1536 dimensions",
		},
	}
	embedIdx, _, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding selection: %w", err)
	}
	if embedIdx == 1 {
		cfg.Embedding = EmbeddingConfig{
			Provider:   ProviderOpenAI,
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		}
	}

	langPrompt := promptui.Select{
		Label: "Default response language",
		Items: []string{"tr", "en"},
	}
	_, lang, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.DefaultLanguage = lang

	dataPrompt := promptui.Prompt{
		Label:   "Data directory (SQLite database and vector index)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("must be a port number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(".mezotravel.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration written to .mezotravel.yml")
	if envVar := APIKeyEnvVar(cfg.Generation.Provider); envVar != "" {
		fmt.Printf("Remember to set %s before starting the server.\n", envVar)
	}
	return cfg, nil
}
