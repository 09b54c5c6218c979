package model

import (
	"time"
)

type UserRole string

const (
	Admin        UserRole = "admin"
	StandardUser UserRole = "user"
)

func (r UserRole) Valid() bool {
	return r == Admin || r == StandardUser
}

// swagger:model User
type User struct {
	BaseModel
	Username   string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"size:16;default:'user'" json:"role"`
	Department string    `gorm:"size:100" json:"department,omitempty"`
	LastLogin  time.Time `json:"lastLogin"`
	LastSeen   time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
