package models

import "gorm.io/gorm"

// Comment represents a comment on a blog post; a non-nil CommentID makes it a reply
type Comment struct {
	gorm.Model
	BlogID    uint   `json:"blog_id" gorm:"index"`
	UserID    uint   `json:"user_id" gorm:"index"`
	CommentID *uint  `json:"comment_id,omitempty" gorm:"index"` // parent comment, nil for top-level
	Content   string `json:"content"`

	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:CommentID"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=500"`
	CommentID *uint  `json:"comment_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
