package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileUpload is a user-owned image. LikeCount is a denormalized counter
// that must always equal the number of ProfileUploadLike rows for the upload;
// only the like toggle mutates it.
type ProfileUpload struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	ImageURL  string `json:"image_url"`
	Caption   string `json:"caption,omitempty"`
	LikeCount int64  `json:"like_count" gorm:"default:0"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ProfileUploadLike is the source of truth for "liked": existence of the row
// means the user likes the upload. Unique per (upload_id, user_id).
type ProfileUploadLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UploadID  uint      `json:"upload_id" gorm:"index;uniqueIndex:idx_upload_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_upload_user_like"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// CreateUploadRequest defines the request body for creating a profile upload
type CreateUploadRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
	Caption  string `json:"caption,omitempty" validate:"omitempty,max=300"`
}

// ToggleLikeResult is the payload returned by the like toggle
type ToggleLikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
