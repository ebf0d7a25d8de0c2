package messaging

import "time"

// NATS subjects for notification events
const (
	SubjectUploadLiked = "notifications.upload_liked"
	SubjectMessageSent = "notifications.message_sent"
)

// UploadLikedEvent is published when a user likes someone else's upload
type UploadLikedEvent struct {
	DispatchID  string    `json:"dispatch_id"`
	ActorID     uint      `json:"actor_id"`
	RecipientID uint      `json:"recipient_id"`
	UploadID    uint      `json:"upload_id"`
	ActorName   string    `json:"actor_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// MessageSentEvent is published when a message lands in a conversation,
// once per recipient
type MessageSentEvent struct {
	DispatchID     string    `json:"dispatch_id"`
	ActorID        uint      `json:"actor_id"`
	RecipientID    uint      `json:"recipient_id"`
	ConversationID uint      `json:"conversation_id"`
	ActorName      string    `json:"actor_name"`
	Timestamp      time.Time `json:"timestamp"`
}
