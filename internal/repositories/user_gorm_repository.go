package repositories

import (
	"fmt"

	"silentvoice/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update saves the full user record in place.
func (r *GORMUserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with username %s not found", username)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByIdentifier retrieves a user whose username or email matches the identifier.
func (r *GORMUserRepository) GetByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ? OR email = ?", identifier, identifier).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with identifier %s not found", identifier)
		}
		return nil, fmt.Errorf("failed to get user by identifier %s: %w", identifier, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// MarkVerified flips is_verified with a conditional update so that the code is
// checked against the current stored value, not a stale read.
func (r *GORMUserRepository) MarkVerified(id, code string) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND verify_code = ?", id, code).
		Update("is_verified", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark user %s verified: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetAcceptingMessages updates the owner's accepting-messages flag.
func (r *GORMUserRepository) SetAcceptingMessages(id string, accepting bool) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_accepting_messages", accepting)
	if result.Error != nil {
		return fmt.Errorf("failed to update accepting flag for user %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s not found", id)
	}
	return nil
}
