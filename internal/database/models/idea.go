package models

import "github.com/google/uuid"

type ContentType string

const (
	ContentTypeText    ContentType = "text"
	ContentTypeImage   ContentType = "image"
	ContentTypeVideo   ContentType = "video"
	ContentTypeReels   ContentType = "reels"
	ContentTypeStories ContentType = "stories"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeText, ContentTypeImage, ContentTypeVideo, ContentTypeReels, ContentTypeStories:
		return true
	}
	return false
}

// Idea is a captured content idea, optionally with uploaded inspiration
// media and a target set of platforms (comma-joined in storage).
type Idea struct {
	Base
	Content        string      `gorm:"not null" json:"content"`
	ContentType    ContentType `gorm:"not null" json:"content_type"`
	Platforms      string      `gorm:"not null" json:"platforms"`
	AssignedTo     *uuid.UUID  `gorm:"type:uuid" json:"assigned_to"`
	InspirationURL *string     `json:"inspiration_url"`
	CreatedBy      uuid.UUID   `gorm:"type:uuid" json:"created_by"`
}

func (Idea) TableName() string {
	return "ideas"
}
