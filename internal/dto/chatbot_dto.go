package dto

import (
	"time"

	"documind-be/pkg/pdf"

	"github.com/google/uuid"
)

// ProcessDocumentsRequest carries the non-file fields of the multipart
// upload. The files themselves come from the multipart form.
type ProcessDocumentsRequest struct {
	Title         string `form:"title"`
	LlmProvider   string `form:"llm_provider"`
	PromptVariant string `form:"prompt_variant"`
	ChunkSize     int    `form:"chunk_size"`
	ChunkOverlap  int    `form:"chunk_overlap"`
}

type ProcessDocumentsResponse struct {
	SessionId   uuid.UUID        `json:"session_id"`
	Title       string           `json:"title"`
	FileResults []pdf.FileResult `json:"file_results"`
	ChunkCount  int              `json:"chunk_count"`
}

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Query     string    `json:"query" validate:"required"`
}

type SourceChunkDTO struct {
	Content string  `json:"content"`
	Score   float32 `json:"score"`
}

type SendChatResponse struct {
	SessionId      uuid.UUID        `json:"session_id"`
	Title          string           `json:"title"`
	Answer         string           `json:"answer"`
	RewrittenQuery string           `json:"rewritten_query,omitempty"`
	Sources        []SourceChunkDTO `json:"sources,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

type SuggestionsResponse struct {
	Questions []string `json:"questions"`
}
