package repositories

import (
	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// LivestreamRepository defines the interface for livestream chat persistence
type LivestreamRepository interface {
	SaveMessage(message *models.LivestreamMessage) error
	RecentMessages(n int) ([]models.LivestreamMessage, error)
}

// PostgresLivestreamRepository implements LivestreamRepository for PostgreSQL
type PostgresLivestreamRepository struct {
	db *gorm.DB
}

// NewPostgresLivestreamRepository creates a new PostgresLivestreamRepository
func NewPostgresLivestreamRepository(db *gorm.DB) *PostgresLivestreamRepository {
	return &PostgresLivestreamRepository{db: db}
}

// SaveMessage persists a livestream chat line
func (r *PostgresLivestreamRepository) SaveMessage(message *models.LivestreamMessage) error {
	return r.db.Create(message).Error
}

// RecentMessages retrieves the n most recent chat lines in chronological order
func (r *PostgresLivestreamRepository) RecentMessages(n int) ([]models.LivestreamMessage, error) {
	var messages []models.LivestreamMessage
	if err := r.db.Order("created_at DESC").Limit(n).Find(&messages).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
