package services_test

import (
	"fmt"
	"strings"
	"testing"

	"silentvoice/internal/models"
	"silentvoice/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Append(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByOwner(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func TestMessageService_SubmitMessage(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewMessageService(mockUsers, mockMessages, mockPublisher)

	recipient := &models.User{
		ID:                  "user-1",
		Username:            "alice",
		IsVerified:          true,
		IsAcceptingMessages: true,
	}

	// Content length boundaries: 9 fails, 10 and 300 succeed, 301 fails
	err := service.SubmitMessage("alice", strings.Repeat("a", 9))
	assert.ErrorIs(t, err, services.ErrInvalidContent)

	mockUsers.On("GetByUsername", "alice").Return(recipient, nil).Twice()
	mockMessages.On("Append", mock.AnythingOfType("*models.Message")).Return(nil).Twice()
	mockPublisher.On("Publish", "", "message.received", mock.Anything).Return(nil).Twice()

	err = service.SubmitMessage("alice", strings.Repeat("a", 10))
	assert.NoError(t, err)
	err = service.SubmitMessage("alice", strings.Repeat("a", 300))
	assert.NoError(t, err)

	err = service.SubmitMessage("alice", strings.Repeat("a", 301))
	assert.ErrorIs(t, err, services.ErrInvalidContent)

	mockUsers.AssertExpectations(t)
	mockMessages.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestMessageService_SubmitMessageStoresContentAndOwner(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	service := services.NewMessageService(mockUsers, mockMessages, nil)

	recipient := &models.User{ID: "user-1", Username: "alice", IsAcceptingMessages: true}

	var appended *models.Message
	mockUsers.On("GetByUsername", "alice").Return(recipient, nil).Once()
	mockMessages.On("Append", mock.AnythingOfType("*models.Message")).Run(func(args mock.Arguments) {
		appended = args.Get(0).(*models.Message)
	}).Return(nil).Once()

	err := service.SubmitMessage("alice", "Hello there, stranger!")
	assert.NoError(t, err)
	assert.NotNil(t, appended)
	assert.Equal(t, "user-1", appended.UserID)
	assert.Equal(t, "Hello there, stranger!", appended.Content)
	assert.False(t, appended.CreatedAt.IsZero())
	mockUsers.AssertExpectations(t)
	mockMessages.AssertExpectations(t)
}

func TestMessageService_SubmitMessageRejections(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	service := services.NewMessageService(mockUsers, mockMessages, nil)

	// Unknown recipient
	mockUsers.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("not found")).Once()
	err := service.SubmitMessage("ghost", "a perfectly fine message")
	assert.ErrorIs(t, err, services.ErrRecipientNotFound)
	mockUsers.AssertExpectations(t)

	// Recipient paused their inbox
	paused := &models.User{ID: "user-2", Username: "bob", IsAcceptingMessages: false}
	mockUsers.On("GetByUsername", "bob").Return(paused, nil).Once()
	err = service.SubmitMessage("bob", "a perfectly fine message")
	assert.ErrorIs(t, err, services.ErrNotAcceptingMessages)
	mockMessages.AssertNumberOfCalls(t, "Append", 0)
	mockUsers.AssertExpectations(t)
}

func TestMessageService_SubmitMessagePublishFailureDoesNotFailIngestion(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewMessageService(mockUsers, mockMessages, mockPublisher)

	recipient := &models.User{ID: "user-1", Username: "alice", IsAcceptingMessages: true}
	mockUsers.On("GetByUsername", "alice").Return(recipient, nil).Once()
	mockMessages.On("Append", mock.AnythingOfType("*models.Message")).Return(nil).Once()
	mockPublisher.On("Publish", "", "message.received", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	err := service.SubmitMessage("alice", "a perfectly fine message")
	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestMessageService_ListMessages(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	service := services.NewMessageService(mockUsers, mockMessages, nil)

	owner := &models.User{ID: "user-1", Username: "alice"}
	expected := []models.Message{
		{ID: 2, UserID: "user-1", Content: "the newer message here"},
		{ID: 1, UserID: "user-1", Content: "the older message here"},
	}

	mockUsers.On("GetByID", "user-1").Return(owner, nil).Once()
	mockMessages.On("ListByOwner", "user-1").Return(expected, nil).Once()

	messages, err := service.ListMessages("user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, messages)
	mockUsers.AssertExpectations(t)
	mockMessages.AssertExpectations(t)

	// Session subject no longer resolves to a record
	mockUsers.On("GetByID", "gone").Return(nil, fmt.Errorf("not found")).Once()
	_, err = service.ListMessages("gone")
	assert.ErrorIs(t, err, services.ErrOwnerNotFound)
	mockUsers.AssertExpectations(t)
}

func TestMessageService_AcceptingMessagesToggle(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockMessages := new(MockMessageRepository)
	service := services.NewMessageService(mockUsers, mockMessages, nil)

	owner := &models.User{ID: "user-1", Username: "alice", IsAcceptingMessages: true}

	mockUsers.On("GetByID", "user-1").Return(owner, nil).Once()
	accepting, err := service.AcceptingMessages("user-1")
	assert.NoError(t, err)
	assert.True(t, accepting)

	mockUsers.On("SetAcceptingMessages", "user-1", false).Return(nil).Once()
	assert.NoError(t, service.SetAcceptingMessages("user-1", false))

	mockUsers.On("SetAcceptingMessages", "gone", true).Return(fmt.Errorf("not found")).Once()
	assert.ErrorIs(t, service.SetAcceptingMessages("gone", true), services.ErrOwnerNotFound)
	mockUsers.AssertExpectations(t)
}

func TestStaticSuggestionProvider_Rotates(t *testing.T) {
	provider := services.NewStaticSuggestionProvider()

	first, err := provider.Suggest()
	assert.NoError(t, err)
	assert.Len(t, strings.Split(first, "||"), 3)

	second, err := provider.Suggest()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
