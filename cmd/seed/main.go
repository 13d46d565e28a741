package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/pkg/config"
	"github.com/noah-isme/mes-workflow-api/pkg/database"
)

const upsertUser = `
	INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)
	ON CONFLICT (email) DO NOTHING`

type seedUser struct {
	name  string
	email string
	role  models.UserRole
}

// Seeds the three starter accounts. Safe to re-run: existing emails are
// left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "asdfasdf"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []seedUser{
		{name: "admin", email: "admin@mail.com", role: models.RoleAdmin},
		{name: "qc10", email: "qc1@mail.com", role: models.RoleQC},
		{name: "operator10", email: "operator10@mail.com", role: models.RoleOperator},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for _, u := range users {
		if _, err := db.ExecContext(ctx, upsertUser, uuid.NewString(), u.name, u.email, string(hash), u.role, now); err != nil {
			log.Fatalf("failed to seed %s: %v", u.email, err)
		}
		log.Printf("seeded %s (%s)", u.email, u.role)
	}

	log.Println("seeder finished")
}
