package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/circlio/backend/internal/cache"
	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/pkg/response"
	"github.com/circlio/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// BlogHandler handles HTTP requests related to blogs
type BlogHandler struct {
	blogRepository repositories.BlogRepository
	blogCache      *cache.BlogCache
}

// NewBlogHandler creates a new BlogHandler. blogCache may be nil, in which
// case /blogs/latest always hits the database.
func NewBlogHandler(blogRepo repositories.BlogRepository, blogCache *cache.BlogCache) *BlogHandler {
	return &BlogHandler{
		blogRepository: blogRepo,
		blogCache:      blogCache,
	}
}

// RegisterPublicRoutes registers publicly readable blog routes
func (h *BlogHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/blogs", h.ListBlogs)
	g.GET("/blogs/latest", h.LatestBlogs)
	g.GET("/blogs/:slug", h.GetBlogBySlug)
}

// RegisterProtectedRoutes registers blog routes requiring authentication
func (h *BlogHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/blogs", h.CreateBlog)
}

// ListBlogs returns published blogs, optionally filtered by search, 10 per page
func (h *BlogHandler) ListBlogs(c echo.Context) error {
	page, limit := parsePagination(c)
	search := c.QueryParam("search")

	blogs, total, err := h.blogRepository.ListPublished(search, page, limit)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list blogs")
	}

	return response.Page(c, "Blogs retrieved", blogs, response.NewMeta(total, len(blogs), limit, page))
}

// LatestBlogs returns the 5 most recent published blogs, served from Redis
// when the cache is warm
func (h *BlogHandler) LatestBlogs(c echo.Context) error {
	ctx := c.Request().Context()

	if h.blogCache != nil {
		if blogs, err := h.blogCache.GetLatest(ctx); err == nil {
			return response.OK(c, "Latest blogs retrieved", blogs)
		}
	}

	blogs, err := h.blogRepository.Latest(5)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "Failed to list latest blogs")
	}

	if h.blogCache != nil {
		if err := h.blogCache.SetLatest(ctx, blogs); err != nil {
			log.Printf("Failed to cache latest blogs: %v", err)
		}
	}

	return response.OK(c, "Latest blogs retrieved", blogs)
}

// GetBlogBySlug returns one published blog and increments its view counter
func (h *BlogHandler) GetBlogBySlug(c echo.Context) error {
	slug := c.Param("slug")

	blog, err := h.blogRepository.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, http.StatusNotFound, "Blog not found")
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to fetch blog")
	}

	if err := h.blogRepository.IncrementViews(blog.ID); err != nil {
		log.Printf("Failed to increment views for blog %d: %v", blog.ID, err)
	} else {
		blog.Views++
	}

	return response.OK(c, "Blog retrieved", blog)
}

// CreateBlog creates a new blog owned by the caller
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, "Validation failed", validators.FieldErrors(err))
	}

	blog := &models.Blog{
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		AuthorID:  currentUserID,
		Published: req.Published,
	}
	if err := h.blogRepository.CreateBlog(blog); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.ValidationError(c, "Validation failed", map[string]string{"slug": "slug is already taken"})
		}
		return response.Error(c, http.StatusInternalServerError, "Failed to create blog")
	}

	return response.Created(c, "Blog created", blog)
}
