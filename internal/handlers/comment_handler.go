package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/pkg/response"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	blogRepository    repositories.BlogRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, blogRepo repositories.BlogRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		blogRepository:    blogRepo,
	}
}

// RegisterPublicRoutes registers publicly readable comment routes
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.ListComments)
}

// RegisterProtectedRoutes registers comment routes requiring authentication
func (h *CommentHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment, or a reply when comment_id is set
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	blogID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	if _, err := h.blogRepository.GetBlogByID(uint(blogID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, http.StatusNotFound, "Post not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch post")
	}

	comment := &models.Comment{
		BlogID:    uint(blogID),
		UserID:    currentUserID,
		CommentID: req.CommentID,
		Content:   req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to create comment")
	}

	return response.Created(c, "Comment created", comment)
}

// ListComments returns top-level comments with their replies, 10 per page
func (h *CommentHandler) ListComments(c echo.Context) error {
	blogID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid post ID")
	}

	page, limit := parsePagination(c)

	comments, total, err := h.commentRepository.ListTopLevelByBlogID(uint(blogID), page, limit)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list comments")
	}

	return response.Page(c, "Comments retrieved", comments, response.NewMeta(total, len(comments), limit, page))
}

// UpdateComment updates a comment; the caller must own it
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, http.StatusNotFound, "Comment not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch comment")
	}

	// Ownership check before any mutation
	if comment.UserID != currentUserID {
		return response.Error(c, http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to update comment")
	}

	return response.OK(c, "Comment updated", comment)
}

// DeleteComment deletes a comment; the caller must own it
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, http.StatusNotFound, "Comment not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch comment")
	}

	if comment.UserID != currentUserID {
		return response.Error(c, http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to delete comment")
	}

	return response.OK(c, "Comment deleted", nil)
}
