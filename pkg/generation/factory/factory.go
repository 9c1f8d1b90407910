package factory

import (
	"fmt"
	"time"

	"campus-assistant-be/pkg/generation"
	"campus-assistant-be/pkg/generation/ollama"
)

func NewProvider(providerType, modelName, baseURL string, timeout time.Duration) (generation.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", providerType)
	}
}
