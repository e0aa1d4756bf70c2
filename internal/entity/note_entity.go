package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Tags      []string
	Folder    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
