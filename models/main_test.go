package models_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory SQLite
// database named after the test, so tests never see each other's rows.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	config.SetDB(db)

	if err := models.MigrateTable(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("time %q: %v", value, err)
	}
	return ts
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("decimal %q: %v", value, err)
	}
	return d
}

func createComida(t *testing.T, ctx context.Context, nome string, quantidade string) *models.Comida {
	t.Helper()
	qty := dec(t, quantidade)
	comida, err := models.CreateComida(ctx, &models.NewComida{
		Nome:         nome,
		Quantidade:   &qty,
		Unidade:      models.UnidadeComidaKg,
		DataValidade: time.Now().AddDate(0, 1, 0),
		Tipo:         models.TipoComidaPerecivel,
	})
	if err != nil {
		t.Fatalf("CreateComida(%s): %v", nome, err)
	}
	return comida
}

func createBebida(t *testing.T, ctx context.Context, nome string, quantidade string) *models.Bebida {
	t.Helper()
	qty := dec(t, quantidade)
	bebida, err := models.CreateBebida(ctx, &models.NewBebida{
		Nome:         nome,
		Quantidade:   &qty,
		Unidade:      models.UnidadeBebidaL,
		DataValidade: time.Now().AddDate(0, 6, 0),
		Tipo:         models.TipoBebidaSemAlcool,
	})
	if err != nil {
		t.Fatalf("CreateBebida(%s): %v", nome, err)
	}
	return bebida
}

func createMaterial(t *testing.T, ctx context.Context, nome string, quantidade string) *models.MaterialSala {
	t.Helper()
	qty := dec(t, quantidade)
	material, err := models.CreateMaterialSala(ctx, &models.NewMaterialSala{
		Nome:       nome,
		Quantidade: &qty,
		Categoria:  models.CategoriaMaterialSala,
	})
	if err != nil {
		t.Fatalf("CreateMaterialSala(%s): %v", nome, err)
	}
	return material
}

func createStudent(t *testing.T, ctx context.Context, nome string, numero string) *models.Student {
	t.Helper()
	student, err := models.CreateStudent(ctx, &models.NewStudent{
		Nome:   nome,
		Numero: numero,
		Email:  strings.ToLower(strings.ReplaceAll(nome, " ", ".")) + "@escola.pt",
		Turma:  models.TurmaR1,
	})
	if err != nil {
		t.Fatalf("CreateStudent(%s): %v", nome, err)
	}
	return student
}

func createService(t *testing.T, ctx context.Context, nome string, alunos ...int) *models.Service {
	t.Helper()
	service, err := models.CreateService(ctx, &models.NewService{
		Nome:   nome,
		Data:   time.Now(),
		Alunos: alunos,
	})
	if err != nil {
		t.Fatalf("CreateService(%s): %v", nome, err)
	}
	return service
}
