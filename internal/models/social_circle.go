package models

import "gorm.io/gorm"

// SocialCircle is a named grouping users can be assigned to
type SocialCircle struct {
	gorm.Model
	Name        string `json:"name" gorm:"uniqueIndex"`
	Description string `json:"description,omitempty"`
}

// AssignSocialCirclesRequest defines the request body for assigning circles to the caller
type AssignSocialCirclesRequest struct {
	CircleIDs []uint `json:"circle_ids" validate:"required,min=1,dive,gt=0"`
}
