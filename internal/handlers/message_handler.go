package handlers

import (
	"silentvoice/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MessageHandler handles HTTP requests for anonymous message ingestion,
// retrieval and the accepting-messages toggle.
type MessageHandler struct {
	messageService *services.MessageService
	suggestions    services.SuggestionProvider
	validate       *validator.Validate
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, suggestions services.SuggestionProvider) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		suggestions:    suggestions,
		validate:       validator.New(),
	}
}

// RegisterPublicRoutes registers the routes reachable without a session.
func (h *MessageHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/send-message", h.HandleSendMessage)
	router.Get("/suggest-messages", h.HandleSuggestMessages)
}

// RegisterProtectedRoutes registers the owner-only routes. The caller is
// expected to mount these behind the auth middleware.
func (h *MessageHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/get-messages", h.HandleGetMessages)
	router.Get("/accept-messages", h.HandleGetAcceptMessages)
	router.Post("/accept-messages", h.HandleSetAcceptMessages)
}

// SendMessageRequest represents the body of an anonymous message submission.
type SendMessageRequest struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"required,min=10,max=300"`
}

// HandleSendMessage appends an anonymous message to the recipient's inbox.
// No authentication: anyone holding the recipient's link may submit.
func (h *MessageHandler) HandleSendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Warnf("Error parsing send-message request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": services.ErrInvalidContent.Error(),
		})
	}

	if err := h.messageService.SubmitMessage(req.Username, req.Content); err != nil {
		logrus.Warnf("Message submission to %s failed: %v", req.Username, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
	})
}

// HandleGetMessages returns the signed-in owner's messages, newest first.
func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Not authenticated",
		})
	}

	messages, err := h.messageService.ListMessages(ownerID)
	if err != nil {
		logrus.Warnf("Error listing messages for %s: %v", ownerID, err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Messages retrieved successfully",
		"messages": messages,
	})
}

// HandleGetAcceptMessages reports the owner's accepting-messages flag.
func (h *MessageHandler) HandleGetAcceptMessages(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Not authenticated",
		})
	}

	accepting, err := h.messageService.AcceptingMessages(ownerID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"message":             "Accepting status retrieved",
		"isAcceptingMessages": accepting,
	})
}

// AcceptMessagesRequest represents the body of an accepting-flag toggle.
type AcceptMessagesRequest struct {
	AcceptMessages bool `json:"acceptMessages"`
}

// HandleSetAcceptMessages toggles whether the owner receives new messages.
func (h *MessageHandler) HandleSetAcceptMessages(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Not authenticated",
		})
	}

	var req AcceptMessagesRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Warnf("Error parsing accept-messages request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.messageService.SetAcceptingMessages(ownerID, req.AcceptMessages); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"message":             "Accepting status updated",
		"isAcceptingMessages": req.AcceptMessages,
	})
}

// HandleSuggestMessages returns a '||'-delimited list of prompt suggestions.
func (h *MessageHandler) HandleSuggestMessages(c *fiber.Ctx) error {
	suggestions, err := h.suggestions.Suggest()
	if err != nil {
		logrus.Errorf("Suggestion provider failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not generate suggestions",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": suggestions,
	})
}
