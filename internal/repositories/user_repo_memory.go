package repositories

import (
	"fmt"
	"sync"

	"silentvoice/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
type MemoryUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %s already exists", user.Username)
		}
		if u.Email == user.Email {
			return fmt.Errorf("email %s already exists", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

// Update replaces an existing user record.
func (r *MemoryUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with ID %s not found for update", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s not found", username)
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByIdentifier returns a user whose username or email matches the identifier.
func (r *MemoryUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with identifier %s not found", identifier)
}

// GetByID returns a user by ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	return &user, nil
}

// MarkVerified flips is_verified only when the stored code still matches.
func (r *MemoryUserRepository) MarkVerified(id, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok || user.VerifyCode != code {
		return false, nil
	}
	user.IsVerified = true
	r.users[id] = user
	return true, nil
}

// SetAcceptingMessages updates the accepting-messages flag.
func (r *MemoryUserRepository) SetAcceptingMessages(id string, accepting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found", id)
	}
	user.IsAcceptingMessages = accepting
	r.users[id] = user
	return nil
}
