package repositories

import "silentvoice/internal/models"

// MessageRepository defines the interface for anonymous message data access.
// Messages are append-only; there is no update or delete path.
type MessageRepository interface {
	// Append persists a single message. Implementations must make this atomic
	// with respect to concurrent appends targeting the same recipient.
	Append(message *models.Message) error
	// ListByOwner returns the owner's messages newest first, ties broken by
	// insertion order.
	ListByOwner(userID string) ([]models.Message, error)
}
