package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByEmployeeID struct {
	EmployeeID string
}

func (s ByEmployeeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeID)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
