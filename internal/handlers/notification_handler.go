package handlers

import (
	"net/http"

	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/pkg/response"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications/mark-all-read", h.MarkAllAsRead)
}

// GetNotifications returns paginated non-deleted notifications. Listing marks
// every unread notification for the caller as read, not just the page shown.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, limit := parsePagination(c)

	notifications, total, err := h.notificationRepository.ListAndMarkRead(currentUserID, page, limit)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list notifications")
	}

	return response.Page(c, "Notifications retrieved", notifications, response.NewMeta(total, len(notifications), limit, page))
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to count notifications")
	}

	return response.OK(c, "Unread count retrieved", echo.Map{"count": count})
}

// MarkAllAsRead explicitly marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to mark notifications as read")
	}

	return response.OK(c, "All notifications marked as read", nil)
}
