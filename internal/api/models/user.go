package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string  `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string  `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName string  `gorm:"size:150" json:"first_name"`
	LastName  string  `gorm:"size:150" json:"last_name"`
	Bio       string  `gorm:"type:text" json:"bio"`
	Role      Role    `gorm:"size:9;default:'user';not null" json:"role"`
	// Confirmation code is a shared secret until the next signup request
	// rotates it. Never serialized.
	ConfirmationCode *string   `gorm:"size:5" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (User) TableName() string {
	return "users"
}
