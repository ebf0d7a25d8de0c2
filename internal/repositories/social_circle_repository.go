package repositories

import (
	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// SocialCircleRepository defines the interface for social circle operations
type SocialCircleRepository interface {
	ListAll() ([]models.SocialCircle, error)
	GetByIDs(ids []uint) ([]models.SocialCircle, error)
	ListForUser(userID uint) ([]models.SocialCircle, error)
	AssignToUser(userID uint, circles []models.SocialCircle) error
}

// PostgresSocialCircleRepository implements SocialCircleRepository for PostgreSQL
type PostgresSocialCircleRepository struct {
	db *gorm.DB
}

// NewPostgresSocialCircleRepository creates a new PostgresSocialCircleRepository
func NewPostgresSocialCircleRepository(db *gorm.DB) *PostgresSocialCircleRepository {
	return &PostgresSocialCircleRepository{db: db}
}

// ListAll retrieves every social circle
func (r *PostgresSocialCircleRepository) ListAll() ([]models.SocialCircle, error) {
	var circles []models.SocialCircle
	err := r.db.Order("name").Find(&circles).Error
	return circles, err
}

// GetByIDs retrieves the circles matching the given IDs
func (r *PostgresSocialCircleRepository) GetByIDs(ids []uint) ([]models.SocialCircle, error) {
	var circles []models.SocialCircle
	err := r.db.Where("id IN ?", ids).Find(&circles).Error
	return circles, err
}

// ListForUser retrieves the circles assigned to a user
func (r *PostgresSocialCircleRepository) ListForUser(userID uint) ([]models.SocialCircle, error) {
	var user models.User
	if err := r.db.Preload("SocialCircles").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return user.SocialCircles, nil
}

// AssignToUser replaces the user's circle assignments with the given set
func (r *PostgresSocialCircleRepository) AssignToUser(userID uint, circles []models.SocialCircle) error {
	user := models.User{ID: userID}
	return r.db.Model(&user).Association("SocialCircles").Replace(circles)
}
