package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations translate a domain
// condition into a GORM clause.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
