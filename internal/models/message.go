package models

import "time"

// Message is an anonymous message appended to a recipient's inbox.
// No sender identity is ever recorded. The auto-increment ID doubles as the
// insertion-order tie-breaker when messages share a CreatedAt timestamp.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"-" gorm:"index;type:varchar(36)"`
	Content   string    `json:"content" validate:"required,min=10,max=300"`
	CreatedAt time.Time `json:"createdAt"`
}
