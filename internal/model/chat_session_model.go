package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatSession ids are generated by the application, never by the database:
// the id doubles as the vector index filename.
type ChatSession struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title         string         `gorm:"type:text;not null"`
	Turns         datatypes.JSON `gorm:"type:jsonb"`
	UploadedFiles datatypes.JSON `gorm:"type:jsonb"`
	IndexPath     *string        `gorm:"type:text"`
	LlmProvider   string         `gorm:"type:varchar(32)"`
	PromptVariant string         `gorm:"type:varchar(16);not null;default:'default'"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
