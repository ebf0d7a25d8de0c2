package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/nats-io/nats.go"
)

// Subscriber consumes notification events and materializes Notification rows.
// Delivery is at-least-once; the dispatch id dedupes replays, so handlers are
// safe to rerun.
type Subscriber struct {
	nc               *nats.Conn
	notificationRepo repositories.NotificationRepository
	subs             []*nats.Subscription
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(nc *nats.Conn, notificationRepo repositories.NotificationRepository) *Subscriber {
	return &Subscriber{nc: nc, notificationRepo: notificationRepo}
}

// Start subscribes to all notification subjects
func (s *Subscriber) Start() error {
	likeSub, err := s.nc.Subscribe(SubjectUploadLiked, s.handleUploadLiked)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", SubjectUploadLiked, err)
	}
	s.subs = append(s.subs, likeSub)

	msgSub, err := s.nc.Subscribe(SubjectMessageSent, s.handleMessageSent)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", SubjectMessageSent, err)
	}
	s.subs = append(s.subs, msgSub)

	log.Println("Notification subscriber started.")
	return nil
}

// Stop unsubscribes from all subjects
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			log.Printf("Error unsubscribing: %v", err)
		}
	}
}

func (s *Subscriber) handleUploadLiked(m *nats.Msg) {
	var event UploadLikedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		log.Printf("Dropping malformed upload-liked event: %v", err)
		return
	}

	notification := &models.Notification{
		Type:        models.NotificationTypeLike,
		ActorID:     event.ActorID,
		RecipientID: event.RecipientID,
		TargetID:    event.UploadID,
		TargetType:  "upload",
		Message:     fmt.Sprintf("%s liked your upload", event.ActorName),
		DispatchID:  event.DispatchID,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		log.Printf("Failed to store like notification: %v", err)
	}
}

func (s *Subscriber) handleMessageSent(m *nats.Msg) {
	var event MessageSentEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		log.Printf("Dropping malformed message-sent event: %v", err)
		return
	}

	notification := &models.Notification{
		Type:        models.NotificationTypeMessage,
		ActorID:     event.ActorID,
		RecipientID: event.RecipientID,
		TargetID:    event.ConversationID,
		TargetType:  "conversation",
		Message:     fmt.Sprintf("New message from %s", event.ActorName),
		DispatchID:  event.DispatchID,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		log.Printf("Failed to store message notification: %v", err)
	}
}
