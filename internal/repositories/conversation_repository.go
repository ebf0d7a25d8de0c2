package repositories

import (
	"errors"
	"time"

	"github.com/circlio/backend/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	GetConversationByID(id uint) (*models.Conversation, error)
	ListForUser(userID uint) ([]models.Conversation, error)
	FindActivePrivateBetween(userA, userB uint) (*models.Conversation, error)
	CreateWithParticipants(conv *models.Conversation, memberIDs []uint) error
	GetActiveParticipant(conversationID, userID uint) (*models.ConversationParticipant, error)
	ListActiveParticipants(conversationID uint) ([]models.ConversationParticipant, error)
	DeactivateParticipant(participant *models.ConversationParticipant) error
}

// PostgresConversationRepository implements ConversationRepository for PostgreSQL
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// GetConversationByID retrieves a conversation with its participants
func (r *PostgresConversationRepository) GetConversationByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Preload("Participants").Preload("Participants.User").First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListForUser retrieves all conversations the user actively participates in,
// most recently created first
func (r *PostgresConversationRepository) ListForUser(userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ? AND cp.is_active = ?", userID, true).
		Preload("Participants").
		Preload("Participants.User").
		Order("conversations.created_at DESC").
		Find(&convs).Error
	return convs, err
}

// FindActivePrivateBetween looks for an existing private conversation where
// both users are still active participants. Matching on active rows only lets
// a pair who left start fresh. If more than one row matches, the lowest id
// wins; pair uniqueness is not enforced by a database constraint.
func (r *PostgresConversationRepository) FindActivePrivateBetween(userA, userB uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.
		Joins("JOIN conversation_participants p1 ON p1.conversation_id = conversations.id AND p1.user_id = ? AND p1.is_active = ?", userA, true).
		Joins("JOIN conversation_participants p2 ON p2.conversation_id = conversations.id AND p2.user_id = ? AND p2.is_active = ?", userB, true).
		Where("conversations.type = ?", models.ConversationTypePrivate).
		Order("conversations.id").
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// CreateWithParticipants inserts the conversation, an admin row for its
// creator and a member row per remaining id, all in one transaction
func (r *PostgresConversationRepository) CreateWithParticipants(conv *models.Conversation, memberIDs []uint) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}

		participants := []models.ConversationParticipant{{
			ConversationID: conv.ID,
			UserID:         conv.CreatorID,
			Role:           models.ParticipantRoleAdmin,
			JoinedAt:       now,
			IsActive:       true,
		}}
		for _, id := range memberIDs {
			if id == conv.CreatorID {
				continue
			}
			participants = append(participants, models.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         id,
				Role:           models.ParticipantRoleMember,
				JoinedAt:       now,
				IsActive:       true,
			})
		}

		return tx.Create(&participants).Error
	})
}

// GetActiveParticipant retrieves the user's active participant row for a conversation
func (r *PostgresConversationRepository) GetActiveParticipant(conversationID, userID uint) (*models.ConversationParticipant, error) {
	var p models.ConversationParticipant
	err := r.db.Where("conversation_id = ? AND user_id = ? AND is_active = ?", conversationID, userID, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveParticipants retrieves all active participant rows for a conversation
func (r *PostgresConversationRepository) ListActiveParticipants(conversationID uint) ([]models.ConversationParticipant, error) {
	var ps []models.ConversationParticipant
	err := r.db.Where("conversation_id = ? AND is_active = ?", conversationID, true).Find(&ps).Error
	return ps, err
}

// DeactivateParticipant soft-leaves: the row is kept with IsActive=false and LeftAt set
func (r *PostgresConversationRepository) DeactivateParticipant(participant *models.ConversationParticipant) error {
	now := time.Now()
	participant.IsActive = false
	participant.LeftAt = &now
	return r.db.Model(participant).Select("IsActive", "LeftAt").Updates(participant).Error
}
