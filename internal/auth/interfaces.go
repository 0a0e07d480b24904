package auth

import (
	"context"

	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
)

// SessionProvider defines the credential and identity operations the
// rest of the application consumes.
type SessionProvider interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, input SignInInput) (*AuthResponse, error)
	SignOut(ctx context.Context, claims *Claims) error
	CreateUser(ctx context.Context, email, password, fullName string, confirmed bool) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// TokenService defines the JWT operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ SessionProvider = (*Service)(nil)
	_ TokenService    = (*JWTService)(nil)
)
