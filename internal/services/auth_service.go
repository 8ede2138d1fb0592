package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"silentvoice/internal/models"
	"silentvoice/internal/repositories"
	"silentvoice/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const verifyCodeTTL = time.Hour

// AuthService handles registration, email verification and authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	mailer     mailer.Mailer
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, m mailer.Mailer, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     m,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Register creates a pending user (or resets an unverified one in place) and
// dispatches a one-time verification code to the given email address.
//
// Uniqueness is enforced globally on both username and email, regardless of
// verification state. Re-registration is keyed by the (username, email) pair:
// only the unverified holder of both may retry, which resets the password
// hash, the code and its expiry on the same record.
func (s *AuthService) Register(username, email, password string) error {
	byUsername, _ := s.userRepo.GetByUsername(username)
	if byUsername != nil && byUsername.IsVerified {
		return ErrUsernameTaken
	}

	byEmail, _ := s.userRepo.GetByEmail(email)
	if byEmail != nil && byEmail.IsVerified {
		return ErrEmailTaken
	}

	// Unverified collisions: the username is held under a different email,
	// or the email is held under a different username.
	if byUsername != nil && byUsername.Email != email {
		return ErrUsernameTaken
	}
	if byEmail != nil && byEmail.Username != username {
		return ErrEmailTaken
	}

	code, err := generateVerifyCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if byEmail != nil {
		// Retry: same identity, same ID. The user may have changed their
		// password while waiting for verification.
		byEmail.Password = string(hashedPassword)
		byEmail.VerifyCode = code
		byEmail.VerifyCodeExpiry = time.Now().Add(verifyCodeTTL)
		if err := s.userRepo.Update(byEmail); err != nil {
			return fmt.Errorf("failed to reset pending registration: %w", err)
		}
	} else {
		user := &models.User{
			Username:            username,
			Email:               email,
			Password:            string(hashedPassword),
			VerifyCode:          code,
			VerifyCodeExpiry:    time.Now().Add(verifyCodeTTL),
			IsVerified:          false,
			IsAcceptingMessages: true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}
	}

	// The record is already persisted; a dispatch failure leaves the account
	// in an unverified, retryable state and the caller must re-register to
	// resend a fresh code.
	if err := s.mailer.SendVerificationEmail(email, username, code); err != nil {
		logrus.Errorf("Verification email dispatch failed for %s: %v", username, err)
		return ErrEmailDeliveryFailed
	}
	return nil
}

// VerifyCode confirms a pending registration. The verified state is terminal:
// re-confirming with the correct, unexpired code is a no-op success.
func (s *AuthService) VerifyCode(username, code string) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil || user == nil {
		return ErrUserNotFound
	}

	codeValid := user.VerifyCode == code
	notExpired := time.Now().Before(user.VerifyCodeExpiry)

	if codeValid && notExpired {
		// Conditional update: the code is compared against the current stored
		// value so a concurrent re-registration cannot be verified by a stale
		// code. An already-verified user passes through as a no-op.
		updated, err := s.userRepo.MarkVerified(user.ID, code)
		if err != nil {
			return fmt.Errorf("failed to verify user %s: %w", username, err)
		}
		if !updated && !user.IsVerified {
			return ErrCodeIncorrect
		}
		return nil
	}
	if !notExpired {
		return ErrCodeExpired
	}
	return ErrCodeIncorrect
}

// CheckUsername reports whether a username is still available. Any existing
// holder, verified or not, makes it unavailable.
func (s *AuthService) CheckUsername(username string) error {
	if existing, _ := s.userRepo.GetByUsername(username); existing != nil {
		return ErrUsernameTaken
	}
	return nil
}

// Login authenticates a user by username or email and returns a JWT token.
// Verification is a hard prerequisite for sign-in.
func (s *AuthService) Login(identifier, password string) (string, error) {
	user, err := s.userRepo.GetByIdentifier(identifier)
	if err != nil || user == nil {
		return "", ErrUserNotFound
	}

	if !user.IsVerified {
		return "", ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrIncorrectPassword
	}

	// The flags are snapshotted into the token at login time; downstream
	// requests read them from the claims rather than re-querying.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":               user.ID,
		"username":              user.Username,
		"is_verified":           user.IsVerified,
		"is_accepting_messages": user.IsAcceptingMessages,
		"exp":                   time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":                   time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// generateVerifyCode returns a 6-digit numeric code uniformly random over
// 100000-999999.
func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
