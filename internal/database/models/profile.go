package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is one-to-one with a User and shares its ID. Rows are created
// lazily by the first profile update, never hard-deleted.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
