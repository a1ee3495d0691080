package main

import (
	"context"
	"log"
	"os"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/models"
)

// Seeds (or resets) the admin account from env. Run once after deploy:
//
//	ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run ./cmd/seed-admin
func main() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	nome := os.Getenv("ADMIN_NOME")
	if nome == "" {
		nome = "Administrador"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	config.ConnectDatabaseWithRetry()
	if err := models.MigrateTable(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	user, err := models.UpsertUser(context.Background(), username, nome, password)
	if err != nil {
		log.Fatalf("seeding admin user failed: %v", err)
	}
	log.Printf("admin user %q ready (id=%d)", user.Username, user.ID)
}
