//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math"

	"documind-be/internal/config"
	"documind-be/pkg/embedding"
)

// CosineSimilarity calculates similarity between two vectors
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	fmt.Println("--- Initializing Providers ---")
	gemini := embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.EmbeddingModel)
	ollama := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)

	text1 := "The quick brown fox jumps over the lazy dog"      // Original
	text2 := "A fast brown fox leaps over a sleepy canine"      // Semantically similar
	text3 := "Quantum physics explores the nature of particles" // Completely different

	fmt.Println("\n--- Generating Embeddings ---")

	generate := func(name string, p embedding.EmbeddingProvider) ([]float32, []float32, []float32) {
		fmt.Printf("\n[%s] Generating...\n", name)

		v1, err := p.Generate(ctx, text1, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Fatalf("[%s] failed on text1: %v", name, err)
		}
		v2, err := p.Generate(ctx, text2, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Fatalf("[%s] failed on text2: %v", name, err)
		}
		v3, err := p.Generate(ctx, text3, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Fatalf("[%s] failed on text3: %v", name, err)
		}
		fmt.Printf("[%s] Dimension: %d\n", name, len(v1))
		return v1, v2, v3
	}

	report := func(name string, v1, v2, v3 []float32) {
		fmt.Printf("\n[%s] similar pair:   %.4f\n", name, CosineSimilarity(v1, v2))
		fmt.Printf("[%s] unrelated pair: %.4f\n", name, CosineSimilarity(v1, v3))
	}

	o1, o2, o3 := generate("OLLAMA", ollama)
	report("OLLAMA", o1, o2, o3)

	if cfg.Ai.GeminiAPIKey != "" {
		g1, g2, g3 := generate("GEMINI", gemini)
		report("GEMINI", g1, g2, g3)
	} else {
		fmt.Println("\n[GEMINI] skipped: no API key configured")
	}
}
