package models

import "gorm.io/gorm"

// Blog represents a long-form post with a public slug
type Blog struct {
	gorm.Model
	Title     string `json:"title"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	Body      string `json:"body"`
	AuthorID  uint   `json:"author_id" gorm:"index"`
	Published bool   `json:"published" gorm:"default:false;index"`
	Views     int64  `json:"views" gorm:"default:0"` // incremented on every slug fetch

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// CreateBlogRequest defines the request body for creating a blog
type CreateBlogRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Slug      string `json:"slug" validate:"required,min=3,max=200"`
	Body      string `json:"body" validate:"required,min=1"`
	Published bool   `json:"published"`
}
