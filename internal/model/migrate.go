package model

import "gorm.io/gorm"

// Migrate brings the schema up to date. AutoMigrate only adds missing
// tables and columns, so existing rows survive version upgrades.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ChatSession{},
		&Note{},
	)
}
