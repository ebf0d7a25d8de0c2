package models

import "time"

const (
	NotificationTypeLike    = "upload_like"
	NotificationTypeMessage = "message"
)

// Notification targets one user. IsRead and IsDeleted have independent
// lifecycles: listing flips IsRead, IsDeleted is only ever set explicitly.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    uint      `json:"target_id"`
	TargetType  string    `json:"target_type" gorm:"size:20"` // upload, conversation
	Message     string    `json:"message"`
	DispatchID  string    `json:"-" gorm:"size:36;uniqueIndex"` // queue event id, dedupes redeliveries
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
