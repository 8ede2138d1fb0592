package services

import "errors"

// Error kinds returned by the services. Handlers map these to HTTP statuses
// with errors.Is; each kind carries a stable, user-presentable message that
// never includes secrets.
var (
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("email is already registered and verified")
	ErrEmailDeliveryFailed  = errors.New("failed to send verification email")
	ErrUserNotFound         = errors.New("user not found")
	ErrCodeExpired          = errors.New("verification code has expired, please sign up again to get a new code")
	ErrCodeIncorrect        = errors.New("incorrect verification code")
	ErrNotVerified          = errors.New("please verify your account before logging in")
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrInvalidContent       = errors.New("message content must be between 10 and 300 characters")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")
	ErrOwnerNotFound        = errors.New("account no longer exists")
)
