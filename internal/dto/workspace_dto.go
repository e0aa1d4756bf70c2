package dto

import (
	"time"

	"github.com/google/uuid"
)

const WorkspaceSchemaVersion = 1

// WorkspaceExport is the portable dump of everything a workspace holds.
// Vector index files are deliberately absent: imported sessions come back
// with no index and must be re-processed before chatting.
type WorkspaceExport struct {
	SchemaVersion int                `json:"schema_version"`
	ExportedAt    time.Time          `json:"exported_at"`
	Sessions      []WorkspaceSession `json:"sessions"`
	Notes         []WorkspaceNote    `json:"notes"`
}

type WorkspaceSession struct {
	Id            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Turns         []ChatTurnDTO `json:"turns"`
	UploadedFiles []string      `json:"uploaded_files"`
	LlmProvider   string        `json:"llm_provider,omitempty"`
	PromptVariant string        `json:"prompt_variant"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type WorkspaceNote struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkspaceImportRequest struct {
	Replace bool            `json:"replace"`
	Data    WorkspaceExport `json:"data" validate:"required"`
}

type WorkspaceImportResult struct {
	SessionsImported int      `json:"sessions_imported"`
	NotesImported    int      `json:"notes_imported"`
	Skipped          int      `json:"skipped"`
	Errors           []string `json:"errors,omitempty"`
}
