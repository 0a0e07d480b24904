package roster_test

import (
	"context"
	"testing"

	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/ellery/crewdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRosterService(t *testing.T) (*roster.Service, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	authService := auth.NewService(db, testutil.CreateTestJWTService(), nil)
	return roster.NewService(db, authService), db
}

func TestService_CreateUser(t *testing.T) {
	svc, _ := newRosterService(t)
	ctx := context.Background()

	t.Run("creates user with role set", func(t *testing.T) {
		user, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Email:    "a@x.com",
			Password: "secret123",
			Name:     "A",
			Roles:    []models.AppRole{models.RoleEditor, models.RoleViewer},
		})
		require.NoError(t, err)

		users, _, err := svc.FetchUsers(ctx)
		require.NoError(t, err)

		var matches []roster.UserWithRoles
		for _, row := range users {
			if row.Email == "a@x.com" {
				matches = append(matches, row)
			}
		}
		require.Len(t, matches, 1)
		assert.Equal(t, user.ID, matches[0].ID)
		assert.ElementsMatch(t, []models.AppRole{models.RoleEditor, models.RoleViewer}, matches[0].Roles)
	})

	t.Run("requires email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Password: "secret123",
			Roles:    []models.AppRole{models.RoleViewer},
		})
		assert.ErrorIs(t, err, roster.ErrMissingEmail)
	})

	t.Run("requires password", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Email: "b@x.com",
			Roles: []models.AppRole{models.RoleViewer},
		})
		assert.ErrorIs(t, err, roster.ErrMissingPassword)
	})

	t.Run("requires at least one role", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Email:    "b@x.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, roster.ErrNoRoles)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Email:    "b@x.com",
			Password: "secret123",
			Roles:    []models.AppRole{"superuser"},
		})
		assert.ErrorIs(t, err, roster.ErrUnknownRole)
	})

	t.Run("duplicate email leaves no role rows behind", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, roster.CreateUserInput{
			Email:    "a@x.com",
			Password: "secret123",
			Roles:    []models.AppRole{models.RoleAdmin},
		})
		assert.ErrorIs(t, err, auth.ErrUserExists)

		users, _, err := svc.FetchUsers(ctx)
		require.NoError(t, err)
		for _, row := range users {
			if row.Email == "a@x.com" {
				assert.NotContains(t, row.Roles, models.RoleAdmin)
			}
		}
	})
}

func TestService_ReplaceRoles(t *testing.T) {
	svc, db := newRosterService(t)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "roles@example.com", "Role Target")
	testutil.CreateTestProfile(t, db, user.ID, "Role Target")
	testutil.GrantRole(t, db, user.ID, models.RoleViewer)

	t.Run("full replace removes prior roles", func(t *testing.T) {
		err := svc.ReplaceRoles(ctx, user.ID, []models.AppRole{models.RoleAdmin})
		require.NoError(t, err)

		roles, err := svc.RolesFor(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.AppRole{models.RoleAdmin}, roles)
		assert.True(t, roster.IsAdmin(roles))
	})

	t.Run("idempotent under repetition", func(t *testing.T) {
		set := []models.AppRole{models.RoleEditor, models.RoleSEOAnalyst}
		require.NoError(t, svc.ReplaceRoles(ctx, user.ID, set))
		require.NoError(t, svc.ReplaceRoles(ctx, user.ID, set))

		roles, err := svc.RolesFor(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, set, roles)
	})

	t.Run("sequential replacements never union", func(t *testing.T) {
		require.NoError(t, svc.ReplaceRoles(ctx, user.ID, []models.AppRole{models.RoleEditor}))
		require.NoError(t, svc.ReplaceRoles(ctx, user.ID, []models.AppRole{models.RoleSEOAnalyst}))

		roles, err := svc.RolesFor(ctx, user.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.AppRole{models.RoleSEOAnalyst}, roles)
	})

	t.Run("requires at least one role", func(t *testing.T) {
		err := svc.ReplaceRoles(ctx, user.ID, nil)
		assert.ErrorIs(t, err, roster.ErrNoRoles)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		someone := testutil.CreateTestUser(t, db, "", "")
		require.NoError(t, db.Delete(&models.User{}, someone.ID).Error)

		err := svc.ReplaceRoles(ctx, someone.ID, []models.AppRole{models.RoleViewer})
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}

func TestService_FetchUsers(t *testing.T) {
	svc, db := newRosterService(t)
	ctx := context.Background()

	withProfile := testutil.CreateTestUser(t, db, "with@example.com", "With Profile")
	testutil.CreateTestProfile(t, db, withProfile.ID, "With Profile")
	testutil.GrantRole(t, db, withProfile.ID, models.RoleManagingEditor)

	noProfile := testutil.CreateTestUser(t, db, "bare@example.com", "Bare Identity")

	users, picker, err := svc.FetchUsers(ctx)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, withProfile.ID, users[0].ID)
	assert.ElementsMatch(t, []models.AppRole{models.RoleManagingEditor}, users[0].Roles)

	ids := make([]string, len(picker))
	for i, entry := range picker {
		ids[i] = entry.ID.String()
	}
	assert.Contains(t, ids, withProfile.ID.String())
	assert.Contains(t, ids, noProfile.ID.String())
}
