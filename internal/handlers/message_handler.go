package handlers

import (
	"net/http"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to conversations and
// messages. Clients poll these endpoints; nothing is pushed.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// RegisterMessageRoutes registers messaging routes. Every route requires
// authentication.
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group, auth AuthMiddleware) {
	g.Use(auth.Required)
	g.POST("/send", h.SendMessage)
	g.POST("/group", h.CreateGroup)
	g.GET("/conversations", h.GetConversations)
	g.GET("/conversation/:conversationId", h.GetMessages)
	g.GET("/:userId", h.GetMessagesByUser)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.messages.Send(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) CreateGroup(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateGroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conv, err := h.messages.CreateGroup(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, conv)
}

func (h *MessageHandler) GetConversations(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	convs, err := h.messages.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, convs)
}

func (h *MessageHandler) GetMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	convID, err := pathID(c, "conversationId", "conversation")
	if err != nil {
		return err
	}
	msgs, err := h.messages.ListMessages(c.Request().Context(), userID, convID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// GetMessagesByUser returns the direct thread with another user, empty when
// none exists yet.
func (h *MessageHandler) GetMessagesByUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	otherID, err := pathID(c, "userId", "user")
	if err != nil {
		return err
	}
	msgs, err := h.messages.ListMessagesWith(c.Request().Context(), userID, otherID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}
