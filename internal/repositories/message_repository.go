package repositories

import (
	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	ListByConversation(conversationID uint, page, limit int) ([]models.Message, int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage creates a new message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListByConversation retrieves messages for a conversation, newest first, paginated
func (r *PostgresMessageRepository) ListByConversation(conversationID uint, page, limit int) ([]models.Message, int64, error) {
	var messages []models.Message
	var total int64

	if err := r.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error

	return messages, total, err
}
