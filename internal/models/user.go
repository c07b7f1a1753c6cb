package models

import (
	"time"
)

// User represents a forum member
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `json:"username" gorm:"type:varchar(45);not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(45)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(45)"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	IsDeleted    bool      `json:"-" gorm:"default:false;index"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// UpdateUserRequest carries the editable profile fields
type UpdateUserRequest struct {
	FirstName string `json:"first_name,omitempty" binding:"omitempty,min=2" example:"Alice"`
	LastName  string `json:"last_name,omitempty" binding:"omitempty,min=2" example:"Smith"`
}

// DeleteUserRequest confirms account deletion with the current password
type DeleteUserRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	FirstName string `json:"first_name,omitempty" example:"Alice"`
	LastName  string `json:"last_name,omitempty" example:"Smith"`
}

// ToUserInfo maps a user row to its public view
func ToUserInfo(u *User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
