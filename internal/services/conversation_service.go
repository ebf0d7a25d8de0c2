package services

import (
	"errors"
	"log"
	"time"

	"github.com/circlio/backend/internal/messaging"
	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound    = errors.New("conversation not found")
	ErrNotParticipant          = errors.New("you are not an active participant of this conversation")
	ErrPrivateParticipantCount = errors.New("a private conversation requires exactly one other participant")
	ErrGroupNameRequired       = errors.New("a group conversation requires a name")
	ErrCannotConverseSelf      = errors.New("cannot start a private conversation with yourself")
	ErrParticipantNotFound     = errors.New("one or more participants do not exist")
)

// ConversationService resolves and mutates conversations and their membership
type ConversationService struct {
	convRepo    repositories.ConversationRepository
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	publisher   messaging.Publisher
}

// NewConversationService creates a new ConversationService. publisher may be
// nil, in which case message notifications are skipped.
func NewConversationService(convRepo repositories.ConversationRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, publisher messaging.Publisher) *ConversationService {
	return &ConversationService{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// Create provisions a conversation, or for a private pair returns the
// existing active one unchanged (creation is idempotent per pair). Only
// active participants count for the reuse lookup, so a pair who left can
// start fresh.
func (s *ConversationService) Create(creatorID uint, req models.CreateConversationRequest) (*models.Conversation, error) {
	others := dedupeIDs(req.ParticipantIDs, creatorID)

	switch req.Type {
	case models.ConversationTypePrivate:
		if len(req.ParticipantIDs) == 1 && req.ParticipantIDs[0] == creatorID {
			return nil, ErrCannotConverseSelf
		}
		if len(others) != 1 {
			return nil, ErrPrivateParticipantCount
		}

	case models.ConversationTypeGroup:
		if req.Name == "" {
			return nil, ErrGroupNameRequired
		}
	}

	if err := s.requireUsersExist(others); err != nil {
		return nil, err
	}

	if req.Type == models.ConversationTypePrivate {
		existing, err := s.convRepo.FindActivePrivateBetween(creatorID, others[0])
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.convRepo.GetConversationByID(existing.ID)
		}
	}

	conv := &models.Conversation{
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   creatorID,
	}
	if err := s.convRepo.CreateWithParticipants(conv, others); err != nil {
		return nil, err
	}

	return s.convRepo.GetConversationByID(conv.ID)
}

// Get retrieves a conversation the caller actively participates in
func (s *ConversationService) Get(conversationID, userID uint) (*models.Conversation, error) {
	conv, err := s.convRepo.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if err := s.requireParticipant(conversationID, userID); err != nil {
		return nil, err
	}
	return conv, nil
}

// List retrieves the caller's active conversations
func (s *ConversationService) List(userID uint) ([]models.Conversation, error) {
	convs, err := s.convRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs, nil
}

// Leave marks the caller's participant row inactive with a left_at stamp.
// The conversation row stays even if nobody active remains.
func (s *ConversationService) Leave(conversationID, userID uint) error {
	if _, err := s.convRepo.GetConversationByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}

	participant, err := s.convRepo.GetActiveParticipant(conversationID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrNotParticipant
	}

	return s.convRepo.DeactivateParticipant(participant)
}

// SendMessage stores a message and enqueues a notification per other active
// participant. Enqueue failures are logged and swallowed.
func (s *ConversationService) SendMessage(userID, conversationID uint, body string) (*models.Message, error) {
	if err := s.requireParticipant(conversationID, userID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
	}
	if err := s.messageRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	s.notifyMessage(userID, conversationID)

	return message, nil
}

// ListMessages retrieves a page of the conversation's messages for a participant
func (s *ConversationService) ListMessages(userID, conversationID uint, page, limit int) ([]models.Message, int64, error) {
	if err := s.requireParticipant(conversationID, userID); err != nil {
		return nil, 0, err
	}
	return s.messageRepo.ListByConversation(conversationID, page, limit)
}

// requireUsersExist verifies every id resolves to a stored user
func (s *ConversationService) requireUsersExist(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := s.userRepo.GetUsersByIDs(ids)
	if err != nil {
		return err
	}
	if len(users) != len(ids) {
		return ErrParticipantNotFound
	}
	return nil
}

func (s *ConversationService) requireParticipant(conversationID, userID uint) error {
	participant, err := s.convRepo.GetActiveParticipant(conversationID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrNotParticipant
	}
	return nil
}

func (s *ConversationService) notifyMessage(actorID, conversationID uint) {
	if s.publisher == nil {
		return
	}

	participants, err := s.convRepo.ListActiveParticipants(conversationID)
	if err != nil {
		log.Printf("Failed to load participants for conversation %d: %v", conversationID, err)
		return
	}

	actorName := ""
	if actor, err := s.userRepo.GetUserByID(actorID); err == nil {
		actorName = actor.Name
	}

	for _, p := range participants {
		if p.UserID == actorID {
			continue
		}
		event := messaging.MessageSentEvent{
			DispatchID:     uuid.NewString(),
			ActorID:        actorID,
			RecipientID:    p.UserID,
			ConversationID: conversationID,
			ActorName:      actorName,
			Timestamp:      time.Now(),
		}
		if err := s.publisher.PublishMessageSent(event); err != nil {
			log.Printf("Failed to enqueue message notification for user %d: %v", p.UserID, err)
		}
	}
}

// dedupeIDs returns ids without duplicates and without excluded
func dedupeIDs(ids []uint, excluded uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == excluded || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
