package models

import (
	"time"
)

// CategoryPermission grants a user access to a private category.
// A grant without write access is read-only.
type CategoryPermission struct {
	UserID      uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID  uint      `json:"category_id" gorm:"primaryKey;autoIncrement:false;index"`
	WriteAccess bool      `json:"write_access" gorm:"default:false"`
	GrantedAt   time.Time `json:"granted_at" gorm:"autoCreateTime"`

	// Relationships
	User     User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Category Category `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CategoryPermission model
func (CategoryPermission) TableName() string {
	return "users_categories_permissions"
}

// PrivilegedUserRow is a grant joined with the grantee's username
type PrivilegedUserRow struct {
	UserID      uint
	Username    string
	WriteAccess bool
}

// PrivilegedUser represents a user holding a grant for a category
type PrivilegedUser struct {
	UserID   uint   `json:"user_id" example:"3"`
	Username string `json:"username" example:"alice"`
	Access   string `json:"access" example:"write"`
}

// PrivilegedUsersResponse lists the grants of one category, write access first
type PrivilegedUsersResponse struct {
	Category string           `json:"category" example:"Staff"`
	Users    []PrivilegedUser `json:"users"`
}

// AccessName renders a write_access flag the way responses show it
func AccessName(writeAccess bool) string {
	if writeAccess {
		return "write"
	}
	return "read"
}

// ToPrivilegedUser maps a grant row to its response form
func ToPrivilegedUser(row PrivilegedUserRow) PrivilegedUser {
	return PrivilegedUser{
		UserID:   row.UserID,
		Username: row.Username,
		Access:   AccessName(row.WriteAccess),
	}
}
