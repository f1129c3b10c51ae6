package models

import "gorm.io/gorm"

type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"unique;not null" json:"key"`
	Value string `json:"value"`
}

type EmailTemplate struct {
	gorm.Model
	Name    string `gorm:"unique;not null" json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Enabled bool   `gorm:"default:true" json:"enabled"`
}

// UserRole is storage only; nothing in this service enforces permissions
// beyond the admin/user split on the users table.
type UserRole struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
	Permissions string `json:"permissions"` // comma-separated permission keys
}
