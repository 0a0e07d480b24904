package roster

import (
	"context"
	"errors"

	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrNoRoles         = errors.New("at least one role is required")
	ErrUnknownRole     = errors.New("unknown role")
)

// Service manages the admin view of accounts and role assignments.
// Identity operations go through the session provider; profile and role
// rows are read and written directly.
type Service struct {
	db   *gorm.DB
	auth *auth.Service
}

func NewService(db *gorm.DB, authService *auth.Service) *Service {
	return &Service{db: db, auth: authService}
}

// FetchUsers fetches profiles, identities and role rows and merges them
// into the per-user admin view plus the existing-user picker list.
func (s *Service) FetchUsers(ctx context.Context) ([]UserWithRoles, []ExistingUser, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, nil, err
	}

	identities, err := s.auth.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}

	var roles []models.UserRole
	if err := s.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, nil, err
	}

	merged, picker := MergeUsers(profiles, identities, roles)
	return merged, picker, nil
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Roles    []models.AppRole
}

func validateRoles(roles []models.AppRole) error {
	if len(roles) == 0 {
		return ErrNoRoles
	}
	for _, role := range roles {
		if !role.Valid() {
			return ErrUnknownRole
		}
	}
	return nil
}

// CreateUser creates a confirmed identity and its role rows in one
// transaction, then seeds the profile so the new account shows up in
// the merged admin view immediately.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, ErrMissingEmail
	}
	if input.Password == "" {
		return nil, ErrMissingPassword
	}
	if err := validateRoles(input.Roles); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.auth.CreateUserTx(ctx, tx, input.Email, input.Password, input.Name, true)
		if err != nil {
			return err
		}
		user = created

		profile := models.Profile{ID: created.ID}
		if input.Name != "" {
			name := input.Name
			profile.FullName = &name
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		return insertRoles(tx, created.ID, input.Roles)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ReplaceRoles swaps a user's entire role set for the given one:
// delete-all-then-insert-selected, never a diff. Runs in a transaction,
// so concurrent replacements for the same user serialize and the final
// set is exactly one submitted set, never a union.
func (s *Service) ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []models.AppRole) error {
	if userID == uuid.Nil {
		return auth.ErrUserNotFound
	}
	if err := validateRoles(roles); err != nil {
		return err
	}

	if _, err := s.auth.GetUserByID(ctx, userID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return insertRoles(tx, userID, roles)
	})
}

// RolesFor returns the fetched role set for one user.
func (s *Service) RolesFor(ctx context.Context, userID uuid.UUID) ([]models.AppRole, error) {
	var rows []models.UserRole
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]models.AppRole, len(rows))
	for i, row := range rows {
		roles[i] = row.Role
	}
	return roles, nil
}

func insertRoles(tx *gorm.DB, userID uuid.UUID, roles []models.AppRole) error {
	for _, role := range roles {
		row := models.UserRole{
			UserID: userID,
			Role:   role,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
