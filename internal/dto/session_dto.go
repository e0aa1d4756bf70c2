package dto

import (
	"time"

	"github.com/google/uuid"
)

type GetAllSessionsResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatTurnDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ShowSessionResponse is the full session record. Loadable reports whether
// the vector index behind it could be brought back into memory; a session
// whose index file is gone still returns its transcript.
type ShowSessionResponse struct {
	Id            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Turns         []ChatTurnDTO `json:"turns"`
	UploadedFiles []string      `json:"uploaded_files"`
	LlmProvider   string        `json:"llm_provider,omitempty"`
	PromptVariant string        `json:"prompt_variant"`
	Loadable      bool          `json:"loadable"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type RenameSessionRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required,max=255"`
}

type RenameSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}
