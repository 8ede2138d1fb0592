package services

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"silentvoice/internal/models"
	"silentvoice/internal/repositories"

	"github.com/sirupsen/logrus"
)

const (
	minContentLength = 10
	maxContentLength = 300
)

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// MessageService handles anonymous message ingestion and retrieval.
type MessageService struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
	publisher   EventPublisher
}

// NewMessageService creates a new MessageService.
func NewMessageService(userRepo repositories.UserRepository, messageRepo repositories.MessageRepository, publisher EventPublisher) *MessageService {
	return &MessageService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		publisher:   publisher,
	}
}

// SubmitMessage appends an anonymous message to the recipient's inbox.
// The sender's identity is never recorded.
func (s *MessageService) SubmitMessage(recipientUsername, content string) error {
	if n := utf8.RuneCountInString(content); n < minContentLength || n > maxContentLength {
		return ErrInvalidContent
	}

	recipient, err := s.userRepo.GetByUsername(recipientUsername)
	if err != nil || recipient == nil {
		return ErrRecipientNotFound
	}
	if !recipient.IsAcceptingMessages {
		return ErrNotAcceptingMessages
	}

	message := &models.Message{
		UserID:    recipient.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messageRepo.Append(message); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	// Notification events are best effort: losing one must not fail an
	// already-persisted ingestion.
	if s.publisher != nil {
		event := map[string]interface{}{
			"recipient":  recipientUsername,
			"receivedAt": message.CreatedAt,
		}
		body, err := json.Marshal(event)
		if err != nil {
			logrus.Errorf("Failed to marshal message event: %v", err)
		} else if err := s.publisher.Publish("", "message.received", body); err != nil {
			logrus.Warnf("Failed to publish message event for %s: %v", recipientUsername, err)
		}
	}

	return nil
}

// ListMessages returns the owner's messages newest first.
func (s *MessageService) ListMessages(ownerID string) ([]models.Message, error) {
	// Defensive: the session's subject may no longer resolve to a record.
	if owner, err := s.userRepo.GetByID(ownerID); err != nil || owner == nil {
		return nil, ErrOwnerNotFound
	}
	return s.messageRepo.ListByOwner(ownerID)
}

// AcceptingMessages reports the owner's current accepting-messages flag.
func (s *MessageService) AcceptingMessages(ownerID string) (bool, error) {
	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil || owner == nil {
		return false, ErrOwnerNotFound
	}
	return owner.IsAcceptingMessages, nil
}

// SetAcceptingMessages toggles whether the owner receives new messages.
func (s *MessageService) SetAcceptingMessages(ownerID string, accepting bool) error {
	if err := s.userRepo.SetAcceptingMessages(ownerID, accepting); err != nil {
		return ErrOwnerNotFound
	}
	return nil
}
