package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/restgest/restgest_backend/config"
	"bitbucket.org/restgest/restgest_backend/models"
	"bitbucket.org/restgest/restgest_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	r := gin.New()
	registerRoutes(r)
	return r
}

func testToken(t *testing.T) string {
	t.Helper()
	token, err := utils.JwtGenerate(1, "test")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method string, path string, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireAuth(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/comidas", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/comidas", "not-a-token", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", w.Code)
	}

	// health stays open
	w = doJSON(t, r, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: status = %d, want 200", w.Code)
	}
}

func TestComidaLifecycleOverHTTP(t *testing.T) {
	r := setupTestRouter(t)
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/comidas", token, `{
		"nome": "Bacalhau",
		"quantidade": "10",
		"unidade": "kg",
		"dataValidade": "2026-12-01T00:00:00Z",
		"tipo": "Perecível"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID         int    `json:"id"`
		Nome       string `json:"nome"`
		Disponivel bool   `json:"disponivel"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Nome != "Bacalhau" || !created.Disponivel {
		t.Fatalf("unexpected create response: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/comidas/%d", created.ID), token, `{"quantidade": "4"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/comidas/%d", created.ID), token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/comidas/%d", created.ID), token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d, want 404", w.Code)
	}
}

func TestUpdateComidaMultipartForm(t *testing.T) {
	r := setupTestRouter(t)
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/comidas", token, `{
		"nome": "Polvo",
		"quantidade": "3",
		"unidade": "kg",
		"dataValidade": "2026-12-01T00:00:00Z",
		"tipo": "Perecível"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	if err := mw.WriteField("disponivel", "false"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/comidas/%d", created.ID), &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("multipart update: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var updated struct {
		Disponivel bool `json:"disponivel"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Disponivel {
		t.Fatalf("disponivel still true after multipart update: %s", rec.Body.String())
	}
}

func TestCreateQuebraOverHTTP(t *testing.T) {
	r := setupTestRouter(t)
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/comidas", token, `{
		"nome": "Arroz",
		"quantidade": "5",
		"unidade": "kg",
		"dataValidade": "2027-01-01T00:00:00Z",
		"tipo": "Não Perecível"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create comida: %d %s", w.Code, w.Body.String())
	}
	var comida struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &comida); err != nil {
		t.Fatalf("decode comida: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/services", token, `{
		"nome": "Jantar",
		"data": "2026-09-01T19:30:00Z"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create service: %d %s", w.Code, w.Body.String())
	}
	var service struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &service); err != nil {
		t.Fatalf("decode service: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/quebras", token, fmt.Sprintf(`{
		"service": %d,
		"comidas": [{"item": %d, "quantidade": "2"}]
	}`, service.ID, comida.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create quebra: %d %s", w.Code, w.Body.String())
	}

	// over-consuming reports per-line violations and a 400
	w = doJSON(t, r, http.MethodPost, "/api/quebras", token, fmt.Sprintf(`{
		"service": %d,
		"comidas": [{"item": %d, "quantidade": "100"}]
	}`, service.ID, comida.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("over-consume: status = %d, want 400", w.Code)
	}
	var errBody struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(errBody.Errors) != 1 || !strings.Contains(errBody.Errors[0].Message, "Insufficient quantity for Arroz") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestLoginOverHTTP(t *testing.T) {
	r := setupTestRouter(t)

	if _, err := models.UpsertUser(context.Background(), "chefe", "Chefe", "segredo123"); err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"username":"chefe","password":"segredo123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var info struct {
		Token string `json:"token"`
		Nome  string `json:"nome"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if info.Token == "" || info.Nome != "Chefe" {
		t.Fatalf("unexpected login body: %s", w.Body.String())
	}

	// issued token opens the authed surface
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", info.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", `{"username":"chefe","password":"errada"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad password: %d, want 400", w.Code)
	}
}
