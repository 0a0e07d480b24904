package models

import "github.com/google/uuid"

// AppRole is the fixed set of capability tiers a user can hold.
type AppRole string

const (
	RoleAdmin          AppRole = "admin"
	RoleManagingEditor AppRole = "managing_editor"
	RoleEditor         AppRole = "editor"
	RoleDesigner       AppRole = "designer"
	RoleVideoEditor    AppRole = "video_editor"
	RoleCaptionCreator AppRole = "caption_creator"
	RoleSEOAnalyst     AppRole = "seo_analyst"
	RoleContributor    AppRole = "contributor"
	RoleViewer         AppRole = "viewer"
)

// AllRoles in display order.
var AllRoles = []AppRole{
	RoleAdmin,
	RoleManagingEditor,
	RoleEditor,
	RoleDesigner,
	RoleVideoEditor,
	RoleCaptionCreator,
	RoleSEOAnalyst,
	RoleContributor,
	RoleViewer,
}

func (r AppRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// UserRole is a single (user, role) assignment. A user holds zero or more.
// The set is only ever mutated by full replacement, never diffed.
type UserRole struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Role   AppRole   `gorm:"not null" json:"role"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
