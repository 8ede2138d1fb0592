package repositories

import "silentvoice/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIdentifier(identifier string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// MarkVerified flips is_verified conditionally on the stored verify code
	// (compare-and-swap). Returns true when a row was updated.
	MarkVerified(id, code string) (bool, error)
	SetAcceptingMessages(id string, accepting bool) error
}
