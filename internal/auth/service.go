package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnconfirmedUser    = errors.New("account pending admin approval")
)

const denylistPrefix = "crewdesk:revoked:"

// Service is the session provider: credential checks, account creation
// and server-side sign-out. Redis may be nil, in which case sign-out
// degrades to the client discarding its token.
type Service struct {
	db    *gorm.DB
	jwt   *JWTService
	redis *redis.Client
}

func NewService(db *gorm.DB, jwt *JWTService, redisClient *redis.Client) *Service {
	return &Service{db: db, jwt: jwt, redis: redisClient}
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

type SignInInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// SignUp creates an unconfirmed account. No token is issued: the account
// cannot sign in until an admin confirms it.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Confirmed:    false,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) SignIn(ctx context.Context, input SignInInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Confirmed {
		return nil, ErrUnconfirmedUser
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

// SignOut denylists the token until its natural expiry so it cannot be
// replayed. Without Redis this is a no-op and the token stays valid
// until it expires.
func (s *Service) SignOut(ctx context.Context, claims *Claims) error {
	if s.redis == nil || claims == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, denylistPrefix+claims.ID, "1", ttl).Err()
}

// IsRevoked reports whether a token has been signed out.
func (s *Service) IsRevoked(ctx context.Context, claims *Claims) bool {
	if s.redis == nil || claims == nil || claims.ID == "" {
		return false
	}
	n, err := s.redis.Exists(ctx, denylistPrefix+claims.ID).Result()
	return err == nil && n > 0
}

// CreateUser is the privileged creation path used by admins. Unlike
// SignUp it can mark the account confirmed immediately.
func (s *Service) CreateUser(ctx context.Context, email, password, fullName string, confirmed bool) (*models.User, error) {
	return s.createUser(ctx, s.db, email, password, fullName, confirmed)
}

// CreateUserTx is CreateUser inside an existing transaction, so callers
// can make identity creation and role insertion atomic.
func (s *Service) CreateUserTx(ctx context.Context, tx *gorm.DB, email, password, fullName string, confirmed bool) (*models.User, error) {
	return s.createUser(ctx, tx, email, password, fullName, confirmed)
}

func (s *Service) createUser(ctx context.Context, db *gorm.DB, email, password, fullName string, confirmed bool) (*models.User, error) {
	var existing models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Confirmed:    confirmed,
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every identity record, for admin joins and assignee
// pickers.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ConfirmUser flips an unconfirmed account to confirmed.
func (s *Service) ConfirmUser(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("confirmed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
