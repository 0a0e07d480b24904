package roster

import (
	"time"

	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
)

// UserWithRoles is the merged per-user admin view: profile fields plus
// the identity's email and the full role set.
type UserWithRoles struct {
	ID        uuid.UUID        `json:"id"`
	Email     string           `json:"email"`
	FullName  *string          `json:"full_name"`
	AvatarURL *string          `json:"avatar_url"`
	Roles     []models.AppRole `json:"roles"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ExistingUser is the slim picker entry for the add-user dialog.
type ExistingUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// MergeUsers reconciles the three independently fetched collections into
// one row per profile that has a matching identity record. Profiles
// without a matching identity are dropped, and identities without a
// profile only appear in the picker list.
func MergeUsers(profiles []models.Profile, identities []models.User, roles []models.UserRole) ([]UserWithRoles, []ExistingUser) {
	byID := make(map[uuid.UUID]*models.User, len(identities))
	for i := range identities {
		byID[identities[i].ID] = &identities[i]
	}

	merged := make([]UserWithRoles, 0, len(profiles))
	index := make(map[uuid.UUID]int, len(profiles))
	for _, profile := range profiles {
		identity, ok := byID[profile.ID]
		if !ok {
			continue
		}
		index[profile.ID] = len(merged)
		merged = append(merged, UserWithRoles{
			ID:        profile.ID,
			Email:     identity.Email,
			FullName:  profile.FullName,
			AvatarURL: profile.AvatarURL,
			Roles:     []models.AppRole{},
			CreatedAt: profile.CreatedAt,
			UpdatedAt: profile.UpdatedAt,
		})
	}

	for _, role := range roles {
		if i, ok := index[role.UserID]; ok {
			merged[i].Roles = append(merged[i].Roles, role.Role)
		}
	}

	picker := make([]ExistingUser, 0, len(identities))
	for _, identity := range identities {
		picker = append(picker, ExistingUser{
			ID:    identity.ID,
			Email: identity.Email,
			Name:  identity.FullName,
		})
	}

	return merged, picker
}

// IsAdmin reports whether a role set grants administrator status. This
// is the only derivation path for admin checks.
func IsAdmin(roles []models.AppRole) bool {
	for _, role := range roles {
		if role == models.RoleAdmin {
			return true
		}
	}
	return false
}
