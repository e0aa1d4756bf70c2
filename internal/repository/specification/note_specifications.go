package specification

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ByFolder filters notes by their folder name.
type ByFolder struct {
	Folder string
}

func (s ByFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder = ?", s.Folder)
}

// TagContains filters notes whose tags array holds the given tag.
type TagContains struct {
	Tag string
}

func (s TagContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(datatypes.JSONArrayQuery("tags").Contains(s.Tag))
}

// NoteSearchQuery filters notes by title or content (case-insensitive).
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}
