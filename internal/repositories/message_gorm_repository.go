package repositories

import (
	"fmt"

	"silentvoice/internal/models"

	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Append inserts a single message row. A single-row INSERT is atomic, so
// concurrent appends to the same recipient cannot lose each other.
func (r *GORMMessageRepository) Append(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to append message for user %s: %w", message.UserID, err)
	}
	return nil
}

// ListByOwner returns the owner's messages newest first. The auto-increment ID
// breaks ties between messages sharing a timestamp, preserving insertion order.
func (r *GORMMessageRepository) ListByOwner(userID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages for user %s: %w", userID, err)
	}
	return messages, nil
}
