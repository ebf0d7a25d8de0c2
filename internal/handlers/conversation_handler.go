package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/services"
	"github.com/circlio/backend/pkg/response"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

// ConversationHandler handles HTTP requests related to conversations and messages
type ConversationHandler struct {
	conversationService *services.ConversationService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversationService *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// RegisterConversationRoutes registers conversation routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.GET("/conversations", h.ListConversations)
	g.POST("/conversations", h.CreateConversation)
	g.GET("/conversations/:id", h.GetConversation)
	g.POST("/conversations/:id/leave", h.LeaveConversation)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.GET("/conversations/:id/messages", h.ListMessages)
}

// ListConversations returns the caller's active conversations
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	convs, err := h.conversationService.List(currentUserID)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list conversations")
	}

	return response.OK(c, "Conversations retrieved", convs)
}

// CreateConversation creates a conversation, or returns the existing private
// conversation for the pair
func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	conv, err := h.conversationService.Create(currentUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPrivateParticipantCount):
			return response.ValidationError(c, "Validation failed", map[string]string{"participant_ids": err.Error()})
		case errors.Is(err, services.ErrGroupNameRequired):
			return response.ValidationError(c, "Validation failed", map[string]string{"name": err.Error()})
		case errors.Is(err, services.ErrCannotConverseSelf):
			return response.ValidationError(c, "Validation failed", map[string]string{"participant_ids": err.Error()})
		case errors.Is(err, services.ErrParticipantNotFound):
			return response.ValidationError(c, "Validation failed", map[string]string{"participant_ids": err.Error()})
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to create conversation")
	}

	return response.Created(c, "Conversation ready", conv)
}

// GetConversation returns one conversation the caller participates in
func (h *ConversationHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid conversation ID")
	}

	conv, err := h.conversationService.Get(uint(conversationID), currentUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConversationNotFound):
			return response.Error(c, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, services.ErrNotParticipant):
			return response.Error(c, http.StatusForbidden, "You are not a participant of this conversation")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch conversation")
	}

	return response.OK(c, "Conversation retrieved", conv)
}

// LeaveConversation soft-leaves the conversation
func (h *ConversationHandler) LeaveConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid conversation ID")
	}

	if err := h.conversationService.Leave(uint(conversationID), currentUserID); err != nil {
		switch {
		case errors.Is(err, services.ErrConversationNotFound):
			return response.Error(c, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, services.ErrNotParticipant):
			return response.Error(c, http.StatusForbidden, "You are not a participant of this conversation")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to leave conversation")
	}

	return response.OK(c, "Left conversation", nil)
}

// SendMessage posts a message into a conversation the caller participates in
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid conversation ID")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	message, err := h.conversationService.SendMessage(currentUserID, uint(conversationID), req.Body)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			return response.Error(c, http.StatusForbidden, "You are not a participant of this conversation")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to send message")
	}

	return response.Created(c, "Message sent", message)
}

// ListMessages returns a page of the conversation's messages
func (h *ConversationHandler) ListMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid conversation ID")
	}

	page, limit := parsePagination(c)

	messages, total, err := h.conversationService.ListMessages(currentUserID, uint(conversationID), page, limit)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			return response.Error(c, http.StatusForbidden, "You are not a participant of this conversation")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to list messages")
	}

	return response.Page(c, "Messages retrieved", messages, response.NewMeta(total, len(messages), limit, page))
}
