package specification

import "gorm.io/gorm"

// TitleLike filters sessions by a case-insensitive title substring.
type TitleLike struct {
	Pattern string
}

func (s TitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Pattern+"%")
}
