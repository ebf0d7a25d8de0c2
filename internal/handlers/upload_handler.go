package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/internal/services"
	"github.com/circlio/backend/pkg/response"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UploadHandler handles HTTP requests related to profile uploads and likes
type UploadHandler struct {
	uploadRepository repositories.UploadRepository
	likeService      *services.LikeService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadRepo repositories.UploadRepository, likeService *services.LikeService) *UploadHandler {
	return &UploadHandler{
		uploadRepository: uploadRepo,
		likeService:      likeService,
	}
}

// RegisterUploadRoutes registers upload and like routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.CreateUpload)
	g.POST("/uploads/:id/like", h.ToggleLike)
	g.GET("/uploads/:id/likes", h.ListLikers)
	g.GET("/uploads/:id/like-status", h.GetLikeStatus)
	g.GET("/me/liked-uploads", h.ListLikedUploads)
}

// CreateUpload creates a profile upload owned by the caller
func (h *UploadHandler) CreateUpload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateUploadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	upload := &models.ProfileUpload{
		UserID:   currentUserID,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	}
	if err := h.uploadRepository.CreateUpload(upload); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to create upload")
	}

	return response.Created(c, "Upload created", upload)
}

// ToggleLike flips the caller's like on an upload and returns the new state
func (h *UploadHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	uploadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid upload ID")
	}

	result, err := h.likeService.Toggle(currentUserID, uint(uploadID))
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			return response.Error(c, http.StatusNotFound, "Upload not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to toggle like")
	}

	return response.OK(c, "Like toggled", result)
}

// ListLikers returns a page of users who like the upload
func (h *UploadHandler) ListLikers(c echo.Context) error {
	uploadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid upload ID")
	}

	if _, err := h.uploadRepository.GetUploadByID(uint(uploadID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, http.StatusNotFound, "Upload not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch upload")
	}

	page, limit := parsePagination(c)

	likes, total, err := h.uploadRepository.ListLikers(uint(uploadID), page, limit)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list likers")
	}

	likers := make([]models.UserCompact, 0, len(likes))
	for _, like := range likes {
		if like.User != nil {
			likers = append(likers, like.User.ToCompact())
		}
	}

	return response.Page(c, "Likers retrieved", likers, response.NewMeta(total, len(likers), limit, page))
}

// GetLikeStatus reports whether the caller likes the upload, with the counter
func (h *UploadHandler) GetLikeStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	uploadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid upload ID")
	}

	liked, likeCount, err := h.likeService.Status(currentUserID, uint(uploadID))
	if err != nil {
		if errors.Is(err, services.ErrUploadNotFound) {
			return response.Error(c, http.StatusNotFound, "Upload not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch like status")
	}

	return response.OK(c, "Like status retrieved", echo.Map{"is_liked": liked, "like_count": likeCount})
}

// ListLikedUploads returns a page of uploads the caller has liked
func (h *UploadHandler) ListLikedUploads(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, limit := parsePagination(c)

	uploads, total, err := h.uploadRepository.ListLikedByUser(currentUserID, page, limit)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list liked uploads")
	}

	return response.Page(c, "Liked uploads retrieved", uploads, response.NewMeta(total, len(uploads), limit, page))
}
