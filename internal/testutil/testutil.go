package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserRole{},
		&models.Task{},
		&models.SocialAccount{},
		&models.Idea{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser creates a confirmed user with a known password
// ("testpassword123").
func CreateTestUser(t *testing.T, db *gorm.DB, email, fullName string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	if email == "" {
		email = "test-" + uuid.New().String()[:8] + "@example.com"
	}

	user := &models.User{
		Base: models.Base{
			ID: uuid.New(),
		},
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Confirmed:    true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// GrantRole inserts a single role row for the user.
func GrantRole(t *testing.T, db *gorm.DB, userID uuid.UUID, role models.AppRole) *models.UserRole {
	t.Helper()

	row := &models.UserRole{
		Base:   models.Base{ID: uuid.New()},
		UserID: userID,
		Role:   role,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to grant role %s: %v", role, err)
	}
	return row
}

// CreateTestProfile creates a profile row sharing the user's ID.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, fullName string) *models.Profile {
	t.Helper()

	now := time.Now()
	profile := &models.Profile{
		ID:        userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if fullName != "" {
		profile.FullName = &fullName
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestTask creates a task with sane defaults.
func CreateTestTask(t *testing.T, db *gorm.DB, createdBy uuid.UUID, title string, assigneeID *uuid.UUID) *models.Task {
	t.Helper()

	task := &models.Task{
		Base:       models.Base{ID: uuid.New()},
		Title:      title,
		Status:     models.TaskStatusToDo,
		Platform:   "instagram",
		Priority:   models.PriorityMedium,
		Completed:  false,
		AssigneeID: assigneeID,
		CreatedBy:  createdBy,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestAccount creates a social account row.
func CreateTestAccount(t *testing.T, db *gorm.DB, platform, username string) *models.SocialAccount {
	t.Helper()

	account := &models.SocialAccount{
		Base:     models.Base{ID: uuid.New()},
		Platform: platform,
		Username: username,
		URL:      "https://" + platform + ".com/" + username,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Admin      *models.User
	Member     *models.User
	AdminToken string
	Token      string
}

// NewTestContext creates a complete test setup: DB, an admin user
// (role row included), a plain confirmed member, and tokens for both.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()

	admin := CreateTestUser(t, db, "admin-"+uuid.New().String()[:8]+"@example.com", "Test Admin")
	GrantRole(t, db, admin.ID, models.RoleAdmin)

	member := CreateTestUser(t, db, "member-"+uuid.New().String()[:8]+"@example.com", "Test Member")
	GrantRole(t, db, member.ID, models.RoleViewer)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Admin:      admin,
		Member:     member,
		AdminToken: GenerateTestToken(t, jwtService, admin),
		Token:      GenerateTestToken(t, jwtService, member),
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
