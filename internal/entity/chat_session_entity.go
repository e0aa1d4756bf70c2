package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is a single message in a session transcript, oldest first.
// The json tags fix the shape stored in the turns column.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSession struct {
	Id            uuid.UUID
	Title         string
	Turns         []ChatTurn
	UploadedFiles []string
	IndexPath     *string
	LlmProvider   string
	PromptVariant string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SessionMeta is the listing projection of a session. It never carries the
// transcript or the uploaded file list.
type SessionMeta struct {
	Id        uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
