package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered identity that can receive anonymous messages.
type User struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username            string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=20,alphanum"`
	Email               string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password            string    `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	VerifyCode          string    `json:"-" gorm:"type:varchar(6)"`
	VerifyCodeExpiry    time.Time `json:"-"`
	IsVerified          bool      `json:"isVerified" gorm:"default:false"`
	IsAcceptingMessages bool      `json:"isAcceptingMessages" gorm:"default:true"`
	Messages            []Message `json:"-" gorm:"foreignKey:UserID"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
