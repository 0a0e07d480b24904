//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/ellery/crewdesk/pkg/config"
	"github.com/ellery/crewdesk/pkg/util"
	"github.com/joho/godotenv"
)

// Seeds the first admin account and the team's social accounts.
// Run with: go run scripts/seed.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService, nil)
	rosterService := roster.NewService(db, authService)

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123!"
	}
	if name == "" {
		name = "Admin"
	}

	user, err := rosterService.CreateUser(context.Background(), roster.CreateUserInput{
		Email:    email,
		Password: password,
		Name:     name,
		Roles:    []models.AppRole{models.RoleAdmin},
	})
	if err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	accounts := []models.SocialAccount{
		{Platform: "instagram", Username: "crewdesk", URL: "https://instagram.com/crewdesk"},
		{Platform: "twitter", Username: "crewdesk", URL: "https://twitter.com/crewdesk"},
		{Platform: "youtube", Username: "crewdesk", URL: "https://youtube.com/@crewdesk"},
	}
	for _, account := range accounts {
		if err := db.Where("platform = ? AND username = ?", account.Platform, account.Username).
			FirstOrCreate(&account).Error; err != nil {
			log.Fatalf("failed to seed account %s: %v", account.Platform, err)
		}
	}

	fmt.Printf("seeded admin %s (%s) and %d social accounts\n", user.Email, user.ID, len(accounts))
}
