package model

import "gorm.io/gorm"

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User table users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                  json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                  json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns the primary key
func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.UserID)
	return nil
}
