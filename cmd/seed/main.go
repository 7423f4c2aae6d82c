// Command seed bootstraps the first admin account. Admin grants are normally
// assigned by an existing admin, so a fresh database needs one seeded user.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/config"
	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/repository/postgres"
	"recruitment-platform/pkg/auth"
	"recruitment-platform/pkg/database"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	emailAddr := flag.String("email", "admin@recruitment.local", "admin email")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(dbPool)
	grantRepo := postgres.NewRoleGrantRepository(dbPool)

	if existing, err := userRepo.GetByUsername(ctx, *username); err == nil && existing != nil {
		log.Fatalf("User %q already exists", *username)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     *username,
		Email:        *emailAddr,
		PasswordHash: hash,
		IsVerified:   true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	for _, role := range []domain.RoleName{domain.RoleJobSeeker, domain.RoleAdmin} {
		if err := grantRepo.EnsureApproved(ctx, user.ID, role, user.ID, now); err != nil {
			log.Fatalf("Failed to grant %s role: %v", role, err)
		}
	}
	if err := userRepo.SetActiveRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		log.Fatalf("Failed to set active role: %v", err)
	}

	log.Printf("Admin user %q created (%s)", *username, user.ID)
}
