package models_test

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/restgest/restgest_backend/models"
)

func TestLogin(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	if _, err := models.UpsertUser(ctx, "chefe", "Chefe de Sala", "segredo123"); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	info, err := models.Login(ctx, &models.LoginInput{Username: "chefe", Password: "segredo123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info.Token == "" {
		t.Error("expected a token")
	}
	if info.Nome != "Chefe de Sala" {
		t.Errorf("nome = %q", info.Nome)
	}

	if _, err := models.Login(ctx, &models.LoginInput{Username: "chefe", Password: "errada"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := models.Login(ctx, &models.LoginInput{Username: "ninguem", Password: "x"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestUpsertUserResetsPassword(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	first, err := models.UpsertUser(ctx, "admin", "Administrador", "antiga")
	if err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}
	second, err := models.UpsertUser(ctx, "admin", "Administrador", "nova")
	if err != nil {
		t.Fatalf("UpsertUser again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert created a second account: %d vs %d", first.ID, second.ID)
	}

	if _, err := models.Login(ctx, &models.LoginInput{Username: "admin", Password: "antiga"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatal("old password should no longer work")
	}
	if _, err := models.Login(ctx, &models.LoginInput{Username: "admin", Password: "nova"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
