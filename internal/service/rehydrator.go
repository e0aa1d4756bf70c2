package service

import (
	"context"
	"fmt"

	"documind-be/internal/repository/memory"
	"documind-be/pkg/answer"
	"documind-be/pkg/embedding"
	"documind-be/pkg/llm"
	"documind-be/pkg/store"
	"documind-be/pkg/vectorindex"

	"github.com/google/uuid"
)

// LLMFactoryFunc builds a text generation provider by name. An empty name
// yields the configured default provider.
type LLMFactoryFunc func(provider string) (llm.LLMProvider, error)

// NewSessionRehydrator returns the cache-miss path: read the stored
// record, load its index file, rebuild the answer engine around it.
func NewSessionRehydrator(
	sessions ISessionService,
	embedder embedding.EmbeddingProvider,
	llmFor LLMFactoryFunc,
	topK int,
) memory.RehydrateFunc {
	return func(ctx context.Context, sessionID string) (*store.ActiveSession, error) {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			return nil, fmt.Errorf("invalid session id %q: %w", sessionID, err)
		}

		record, err := sessions.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if record.IndexPath == nil {
			return nil, &memory.SessionLoadError{
				SessionID: sessionID,
				Err:       fmt.Errorf("session has no index file; process documents first"),
			}
		}

		ix, err := vectorindex.Load(*record.IndexPath, embedder)
		if err != nil {
			return nil, &memory.SessionLoadError{
				SessionID: sessionID,
				Err:       fmt.Errorf("index cannot be loaded, re-process the documents: %w", err),
			}
		}

		// A variant value from a future schema falls back to the default
		// rather than blocking the whole session.
		variant, err := answer.ParseVariant(record.PromptVariant)
		if err != nil {
			variant = answer.VariantDefault
		}

		provider, err := llmFor(record.LlmProvider)
		if err != nil {
			return nil, err
		}

		return &store.ActiveSession{
			SessionID: sessionID,
			Index:     ix,
			Engine:    answer.NewEngine(ix, provider, variant, topK),
		}, nil
	}
}
