package factory

import (
	"errors"
	"fmt"

	"documind-be/pkg/llm"
	"documind-be/pkg/llm/gemini"
	"documind-be/pkg/llm/huggingface"
	"documind-be/pkg/llm/ollama"
)

// ErrUnsupportedProvider flags a provider name outside the known set.
var ErrUnsupportedProvider = errors.New("unsupported llm provider")

func NewLLMProvider(providerType, modelName, baseURL, geminiAPIKey, huggingFaceAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(huggingFaceAPIKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerType)
	}
}
