package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"silentvoice/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for sign-up, verification and sign-in.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/sign-up", h.HandleSignUp)
	router.Post("/verify-code", h.HandleVerifyCode)
	router.Get("/check-username-unique", h.HandleCheckUsername)
	router.Post("/sign-in", h.HandleSignIn)
}

// SignUpRequest represents the request body for registration.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSignUp handles new user registration.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Warnf("Error parsing sign-up request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.authService.Register(req.Username, req.Email, req.Password); err != nil {
		logrus.Warnf("Registration failed for %s: %v", req.Username, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully. Verify your email",
	})
}

// VerifyCodeRequest represents the request body for code confirmation.
type VerifyCodeRequest struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

// HandleVerifyCode confirms a pending registration with a one-time code.
func (h *AuthHandler) HandleVerifyCode(c *fiber.Ctx) error {
	var req VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Warnf("Error parsing verify-code request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Username or code missing",
		})
	}

	// Usernames may arrive URL-encoded from the verification link.
	username := req.Username
	if decoded, err := url.QueryUnescape(username); err == nil {
		username = decoded
	}

	if err := h.authService.VerifyCode(username, req.Code); err != nil {
		logrus.Warnf("Verification failed for %s: %v", username, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account verified successfully",
	})
}

// HandleCheckUsername reports whether a candidate username is available.
func (h *AuthHandler) HandleCheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if err := h.validate.Var(username, "required,min=3,max=20,alphanum"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid query parameters",
		})
	}

	if err := h.authService.CheckUsername(username); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Username is already taken",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Username is available",
	})
}

// SignInRequest represents the request body for login. The identifier may be
// a username or an email address.
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// HandleSignIn handles user login and issues a JWT token.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Warnf("Error parsing sign-in request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	token, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		logrus.Warnf("Login failed for %s: %v", req.Identifier, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// statusForError maps service error kinds to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrRecipientNotFound), errors.Is(err, services.ErrOwnerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotVerified), errors.Is(err, services.ErrIncorrectPassword):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotAcceptingMessages):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrCodeExpired), errors.Is(err, services.ErrCodeIncorrect), errors.Is(err, services.ErrInvalidContent):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// validationMessages flattens validator errors into a field -> message map.
func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}
