package repositories

import (
	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(blog *models.Blog) error
	ListPublished(search string, page, limit int) ([]models.Blog, int64, error)
	GetBySlug(slug string) (*models.Blog, error)
	GetBlogByID(id uint) (*models.Blog, error)
	IncrementViews(id uint) error
	Latest(n int) ([]models.Blog, error)
}

// PostgresBlogRepository implements BlogRepository for PostgreSQL
type PostgresBlogRepository struct {
	db *gorm.DB
}

// NewPostgresBlogRepository creates a new PostgresBlogRepository
func NewPostgresBlogRepository(db *gorm.DB) *PostgresBlogRepository {
	return &PostgresBlogRepository{db: db}
}

// CreateBlog creates a new blog
func (r *PostgresBlogRepository) CreateBlog(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// ListPublished retrieves published blogs, optionally filtered by a title search,
// newest first, paginated
func (r *PostgresBlogRepository) ListPublished(search string, page, limit int) ([]models.Blog, int64, error) {
	var blogs []models.Blog
	var total int64

	q := r.db.Model(&models.Blog{}).Where("published = ?", true)
	if search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error

	return blogs, total, err
}

// GetBySlug retrieves a published blog by its slug
func (r *PostgresBlogRepository) GetBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Preload("Author").Where("slug = ? AND published = ?", slug, true).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetBlogByID retrieves a blog by ID
func (r *PostgresBlogRepository) GetBlogByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// IncrementViews bumps the view counter for a blog
func (r *PostgresBlogRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Latest retrieves the n most recently published blogs
func (r *PostgresBlogRepository) Latest(n int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.Preload("Author").
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(n).
		Find(&blogs).Error
	return blogs, err
}
