package handlers

import (
	"net/http"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/pkg/response"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

// SocialCircleHandler handles social circle listing and assignment
type SocialCircleHandler struct {
	circleRepository repositories.SocialCircleRepository
}

// NewSocialCircleHandler creates a new SocialCircleHandler
func NewSocialCircleHandler(circleRepo repositories.SocialCircleRepository) *SocialCircleHandler {
	return &SocialCircleHandler{circleRepository: circleRepo}
}

// RegisterSocialCircleRoutes registers social circle routes
func (h *SocialCircleHandler) RegisterSocialCircleRoutes(g *echo.Group) {
	g.GET("/social-circles", h.ListSocialCircles)
	g.GET("/me/social-circles", h.ListMySocialCircles)
	g.POST("/me/social-circles", h.AssignSocialCircles)
}

// ListSocialCircles returns every social circle
func (h *SocialCircleHandler) ListSocialCircles(c echo.Context) error {
	circles, err := h.circleRepository.ListAll()
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list social circles")
	}

	return response.OK(c, "Social circles retrieved", circles)
}

// ListMySocialCircles returns the circles assigned to the caller
func (h *SocialCircleHandler) ListMySocialCircles(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	circles, err := h.circleRepository.ListForUser(currentUserID)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list social circles")
	}

	return response.OK(c, "Social circles retrieved", circles)
}

// AssignSocialCircles replaces the caller's circle assignments
func (h *SocialCircleHandler) AssignSocialCircles(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.AssignSocialCirclesRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	circles, err := h.circleRepository.GetByIDs(req.CircleIDs)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch social circles")
	}
	if len(circles) != len(req.CircleIDs) {
		return response.Error(c, http.StatusNotFound, "One or more social circles not found")
	}

	if err := h.circleRepository.AssignToUser(currentUserID, circles); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to assign social circles")
	}

	return response.OK(c, "Social circles assigned", circles)
}
