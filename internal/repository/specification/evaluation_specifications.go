package specification

import "gorm.io/gorm"

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByDropboxPath struct {
	Path string
}

func (s ByDropboxPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dropbox_path = ?", s.Path)
}

type ByLanguage struct {
	Language string
}

func (s ByLanguage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("language = ?", s.Language)
}

type ApprovedOnly struct{}

func (s ApprovedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approved = ?", true)
}
