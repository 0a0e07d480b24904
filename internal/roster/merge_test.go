package roster_test

import (
	"testing"

	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestMergeUsers(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	orphan := uuid.New()

	profiles := []models.Profile{
		{ID: alice, FullName: strptr("Alice"), AvatarURL: strptr("https://cdn/avatars/alice.png")},
		{ID: bob, FullName: strptr("Bob")},
		{ID: orphan, FullName: strptr("Ghost")},
	}
	identities := []models.User{
		{Base: models.Base{ID: alice}, Email: "alice@example.com", FullName: "Alice"},
		{Base: models.Base{ID: bob}, Email: "bob@example.com", FullName: "Bob"},
	}
	roles := []models.UserRole{
		{UserID: alice, Role: models.RoleAdmin},
		{UserID: alice, Role: models.RoleEditor},
		{UserID: bob, Role: models.RoleViewer},
		{UserID: orphan, Role: models.RoleViewer},
	}

	merged, picker := roster.MergeUsers(profiles, identities, roles)

	t.Run("one row per profile with a matching identity", func(t *testing.T) {
		require.Len(t, merged, 2)
		assert.Equal(t, "alice@example.com", merged[0].Email)
		assert.Equal(t, "bob@example.com", merged[1].Email)
	})

	t.Run("profiles without an identity are dropped", func(t *testing.T) {
		for _, row := range merged {
			assert.NotEqual(t, orphan, row.ID)
		}
	})

	t.Run("role rows attach to their user", func(t *testing.T) {
		assert.ElementsMatch(t, []models.AppRole{models.RoleAdmin, models.RoleEditor}, merged[0].Roles)
		assert.ElementsMatch(t, []models.AppRole{models.RoleViewer}, merged[1].Roles)
	})

	t.Run("profile fields carry through", func(t *testing.T) {
		require.NotNil(t, merged[0].AvatarURL)
		assert.Equal(t, "https://cdn/avatars/alice.png", *merged[0].AvatarURL)
	})

	t.Run("picker lists every identity", func(t *testing.T) {
		require.Len(t, picker, 2)
		assert.Equal(t, "Alice", picker[0].Name)
	})
}

func TestMergeUsers_Empty(t *testing.T) {
	merged, picker := roster.MergeUsers(nil, nil, nil)
	assert.Empty(t, merged)
	assert.Empty(t, picker)
}

func TestMergeUsers_IdentityWithoutProfile(t *testing.T) {
	id := uuid.New()
	identities := []models.User{{Base: models.Base{ID: id}, Email: "new@example.com"}}

	merged, picker := roster.MergeUsers(nil, identities, nil)

	// No profile yet means no admin-view row, but the identity is still
	// offered in the picker.
	assert.Empty(t, merged)
	require.Len(t, picker, 1)
	assert.Equal(t, id, picker[0].ID)
}

func TestMergeUsers_UserWithNoRoles(t *testing.T) {
	id := uuid.New()
	profiles := []models.Profile{{ID: id}}
	identities := []models.User{{Base: models.Base{ID: id}, Email: "norole@example.com"}}

	merged, _ := roster.MergeUsers(profiles, identities, nil)

	require.Len(t, merged, 1)
	assert.NotNil(t, merged[0].Roles)
	assert.Empty(t, merged[0].Roles)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, roster.IsAdmin([]models.AppRole{models.RoleViewer, models.RoleAdmin}))
	assert.False(t, roster.IsAdmin([]models.AppRole{models.RoleViewer, models.RoleEditor}))
	assert.False(t, roster.IsAdmin(nil))
}
