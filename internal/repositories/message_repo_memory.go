package repositories

import (
	"sort"
	"sync"

	"silentvoice/internal/models"
)

// MemoryMessageRepository is an in-memory implementation of MessageRepository.
// The slice preserves insertion order; ListByOwner applies the newest-first
// presentation sort without reordering storage.
type MemoryMessageRepository struct {
	messages []models.Message
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryMessageRepository creates a new instance of MemoryMessageRepository.
func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{}
}

// Append stores a message. Safe for concurrent use by many anonymous senders.
func (r *MemoryMessageRepository) Append(message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	message.ID = r.nextID
	r.messages = append(r.messages, *message)
	return nil
}

// ListByOwner returns the owner's messages newest first, ties broken by
// insertion order.
func (r *MemoryMessageRepository) ListByOwner(userID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.Message, 0)
	for _, m := range r.messages {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}
