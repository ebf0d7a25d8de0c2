package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ConversationTypePrivate = "private"
	ConversationTypeGroup   = "group"

	ParticipantRoleAdmin  = "admin"
	ParticipantRoleMember = "member"
)

// Conversation is either a private pair or a named group
type Conversation struct {
	gorm.Model
	Type        string `json:"type" gorm:"size:20;index"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	CreatorID   uint   `json:"creator_id" gorm:"index"`

	Participants []ConversationParticipant `json:"participants,omitempty" gorm:"foreignKey:ConversationID"`
}

// ConversationParticipant joins a user to a conversation. Rows are never
// hard-deleted; leaving flips IsActive and stamps LeftAt.
type ConversationParticipant struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ConversationID uint       `json:"conversation_id" gorm:"index;uniqueIndex:idx_conversation_user"`
	UserID         uint       `json:"user_id" gorm:"index;uniqueIndex:idx_conversation_user"`
	Role           string     `json:"role" gorm:"size:20;default:'member'"`
	JoinedAt       time.Time  `json:"joined_at"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`
	LeftAt         *time.Time `json:"left_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Message is a single line inside a conversation
type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversation_id" gorm:"index"`
	SenderID       uint   `json:"sender_id" gorm:"index"`
	Body           string `json:"body"`

	Sender *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// CreateConversationRequest defines the request body for creating (or reusing) a conversation
type CreateConversationRequest struct {
	Type           string `json:"type" validate:"required,oneof=private group"`
	Name           string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=500"`
	ParticipantIDs []uint `json:"participant_ids" validate:"required,min=1,dive,gt=0"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}
