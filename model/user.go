package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	gorm.Model
	Email    string   `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Name     string   `json:"name" gorm:"size:100"`
	Password string   `json:"-" gorm:"size:1000;not null"`
	Role     UserRole `json:"role" gorm:"size:16;not null;default:user"`
}

// IsAdmin reports whether u holds the admin role. A nil user is never admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
