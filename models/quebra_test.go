package models_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/shopspring/decimal"
)

func quebraLine(t *testing.T, itemId int, quantidade string) models.NewQuebraLine {
	t.Helper()
	qty := dec(t, quantidade)
	return models.NewQuebraLine{Item: itemId, Quantidade: &qty}
}

func TestCreateQuebraDeductsStock(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Bacalhau", "10")
	bebida := createBebida(t, ctx, "Vinho Tinto", "24")
	aluno := createStudent(t, ctx, "Ana Silva", "1001")
	service := createService(t, ctx, "Jantar de Gala", aluno.ID)

	quebra, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{quebraLine(t, comida.ID, "4")},
		Bebidas: []models.NewQuebraLine{quebraLine(t, bebida.ID, "6")},
	})
	if err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	if quebra.Service.Nome != "Jantar de Gala" {
		t.Errorf("service not denormalized, got %q", quebra.Service.Nome)
	}
	if len(quebra.Comidas) != 1 || quebra.Comidas[0].Item.Nome != "Bacalhau" {
		t.Fatalf("comida line not denormalized: %+v", quebra.Comidas)
	}

	comida, err = models.GetComida(ctx, comida.ID)
	if err != nil {
		t.Fatalf("GetComida: %v", err)
	}
	if !comida.Quantidade.Equal(dec(t, "6")) {
		t.Errorf("comida stock = %s, want 6", comida.Quantidade)
	}
	if comida.Disponivel == nil || !*comida.Disponivel {
		t.Error("comida should stay available")
	}

	bebida, err = models.GetBebida(ctx, bebida.ID)
	if err != nil {
		t.Fatalf("GetBebida: %v", err)
	}
	if !bebida.Quantidade.Equal(dec(t, "18")) {
		t.Errorf("bebida stock = %s, want 18", bebida.Quantidade)
	}
}

func TestCreateQuebraInsufficientStockMutatesNothing(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Arroz", "5")
	bebida := createBebida(t, ctx, "Sumo de Laranja", "10")
	service := createService(t, ctx, "Almoço")

	_, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{quebraLine(t, comida.ID, "8")},
		Bebidas: []models.NewQuebraLine{quebraLine(t, bebida.ID, "2")},
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 1 {
		t.Fatalf("want 1 violation, got %+v", validationErr.Fields)
	}
	if !strings.Contains(validationErr.Fields[0].Message, "Insufficient quantity for Arroz") {
		t.Errorf("unexpected violation message %q", validationErr.Fields[0].Message)
	}

	// neither item moved, including the one that was individually valid
	comida, _ = models.GetComida(ctx, comida.ID)
	if !comida.Quantidade.Equal(dec(t, "5")) {
		t.Errorf("comida stock = %s, want 5 untouched", comida.Quantidade)
	}
	bebida, _ = models.GetBebida(ctx, bebida.ID)
	if !bebida.Quantidade.Equal(dec(t, "10")) {
		t.Errorf("bebida stock = %s, want 10 untouched", bebida.Quantidade)
	}
}

func TestCreateQuebraCollectsAllViolations(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Batata", "3")
	service := createService(t, ctx, "Serviço de Teste")

	_, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service:   service.ID,
		Comidas:   []models.NewQuebraLine{quebraLine(t, comida.ID, "9")},
		Materiais: []models.NewQuebraLine{quebraLine(t, 9999, "1")},
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 2 {
		t.Fatalf("want both violations reported, got %+v", validationErr.Fields)
	}

	byField := map[string]string{}
	for _, f := range validationErr.Fields {
		byField[f.Field] = f.Message
	}
	if !strings.Contains(byField["comidas[0]"], "Insufficient quantity for Batata") {
		t.Errorf("comidas[0] violation = %q", byField["comidas[0]"])
	}
	if !strings.Contains(byField["materiais[0]"], "Material 9999 not found") {
		t.Errorf("materiais[0] violation = %q", byField["materiais[0]"])
	}
}

func TestCreateQuebraUnknownService(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Cebola", "4")

	_, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: 42,
		Comidas: []models.NewQuebraLine{quebraLine(t, comida.ID, "1")},
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validationErr.Message != "Service not found" {
		t.Errorf("message = %q, want Service not found", validationErr.Message)
	}
}

func TestCreateQuebraUsarTudoTogglesAvailabilityOnly(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	material := createMaterial(t, ctx, "Copos de Vinho", "40")
	service := createService(t, ctx, "Receção")

	_, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service:   service.ID,
		Materiais: []models.NewQuebraLine{{Item: material.ID, UsarTudo: true}},
	})
	if err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	material, _ = models.GetMaterialSala(ctx, material.ID)
	if material.Disponivel == nil || *material.Disponivel {
		t.Error("material should be unavailable after usarTudo")
	}
	if !material.Quantidade.Equal(dec(t, "40")) {
		t.Errorf("usarTudo must not touch quantity, got %s", material.Quantidade)
	}
}

func TestCreateQuebraExactDepletionFlipsAvailability(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Azeite", "2.5")
	service := createService(t, ctx, "Jantar")

	quebra, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{quebraLine(t, comida.ID, "2.5")},
	})
	if err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	comida, _ = models.GetComida(ctx, comida.ID)
	if !comida.Quantidade.Equal(decimal.Zero) {
		t.Errorf("stock = %s, want 0", comida.Quantidade)
	}
	if comida.Disponivel == nil || *comida.Disponivel {
		t.Error("item at zero stock should be unavailable")
	}

	// reversal restores both the quantity and the availability
	if _, err := models.DeleteQuebra(ctx, quebra.ID); err != nil {
		t.Fatalf("DeleteQuebra: %v", err)
	}
	comida, _ = models.GetComida(ctx, comida.ID)
	if !comida.Quantidade.Equal(dec(t, "2.5")) {
		t.Errorf("stock after reversal = %s, want 2.5", comida.Quantidade)
	}
	if comida.Disponivel == nil || !*comida.Disponivel {
		t.Error("item should be available again after reversal")
	}
}

func TestDeleteQuebraRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Farinha", "12")
	bebida := createBebida(t, ctx, "Água", "30")
	material := createMaterial(t, ctx, "Pratos", "60")
	service := createService(t, ctx, "Banquete")

	quebra, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service:   service.ID,
		Comidas:   []models.NewQuebraLine{quebraLine(t, comida.ID, "5")},
		Bebidas:   []models.NewQuebraLine{quebraLine(t, bebida.ID, "10")},
		Materiais: []models.NewQuebraLine{quebraLine(t, material.ID, "12")},
	})
	if err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	if _, err := models.DeleteQuebra(ctx, quebra.ID); err != nil {
		t.Fatalf("DeleteQuebra: %v", err)
	}

	comida, _ = models.GetComida(ctx, comida.ID)
	bebida, _ = models.GetBebida(ctx, bebida.ID)
	material, _ = models.GetMaterialSala(ctx, material.ID)
	if !comida.Quantidade.Equal(dec(t, "12")) {
		t.Errorf("comida = %s, want 12", comida.Quantidade)
	}
	if !bebida.Quantidade.Equal(dec(t, "30")) {
		t.Errorf("bebida = %s, want 30", bebida.Quantidade)
	}
	if !material.Quantidade.Equal(dec(t, "60")) {
		t.Errorf("material = %s, want 60", material.Quantidade)
	}

	_, err = models.GetQuebra(ctx, quebra.ID)
	var notFoundErr *utils.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("quebra should be gone, got %v", err)
	}

	// A repeated delete must not restore the stock a second time.
	if _, err := models.DeleteQuebra(ctx, quebra.ID); !errors.As(err, &notFoundErr) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
	comida, _ = models.GetComida(ctx, comida.ID)
	if !comida.Quantidade.Equal(dec(t, "12")) {
		t.Errorf("comida after second delete = %s, want 12", comida.Quantidade)
	}
}

func TestDeleteQuebraSkipsDeletedItems(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Tomate", "8")
	bebida := createBebida(t, ctx, "Cerveja", "20")
	service := createService(t, ctx, "Evento")

	quebra, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{quebraLine(t, comida.ID, "3")},
		Bebidas: []models.NewQuebraLine{quebraLine(t, bebida.ID, "5")},
	})
	if err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	if _, err := models.DeleteComida(ctx, comida.ID); err != nil {
		t.Fatalf("DeleteComida: %v", err)
	}

	if _, err := models.DeleteQuebra(ctx, quebra.ID); err != nil {
		t.Fatalf("DeleteQuebra with missing item: %v", err)
	}

	// the surviving item is restored
	bebida, _ = models.GetBebida(ctx, bebida.ID)
	if !bebida.Quantidade.Equal(dec(t, "20")) {
		t.Errorf("bebida = %s, want 20", bebida.Quantidade)
	}
}

func TestDeleteQuebraNotFound(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	_, err := models.DeleteQuebra(ctx, 123)
	var notFoundErr *utils.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestGetAllQuebrasSortedByDataDesc(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	comida := createComida(t, ctx, "Ovos", "100")
	service := createService(t, ctx, "Pequeno Almoço")

	older := dec(t, "1")
	newer := dec(t, "2")
	day1 := mustTime(t, "2026-03-01T12:00:00Z")
	day2 := mustTime(t, "2026-03-02T12:00:00Z")
	if _, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{{Item: comida.ID, Quantidade: &older}},
		Data:    &day1,
	}); err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}
	if _, err := models.CreateQuebra(ctx, &models.NewQuebra{
		Service: service.ID,
		Comidas: []models.NewQuebraLine{{Item: comida.ID, Quantidade: &newer}},
		Data:    &day2,
	}); err != nil {
		t.Fatalf("CreateQuebra: %v", err)
	}

	quebras, err := models.GetAllQuebras(ctx)
	if err != nil {
		t.Fatalf("GetAllQuebras: %v", err)
	}
	if len(quebras) != 2 {
		t.Fatalf("want 2 quebras, got %d", len(quebras))
	}
	if !quebras[0].Data.After(quebras[1].Data) {
		t.Errorf("quebras not sorted data DESC: %v then %v", quebras[0].Data, quebras[1].Data)
	}
}
