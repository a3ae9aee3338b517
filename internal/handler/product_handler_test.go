package handler

import (
	"net/http"
	"testing"

	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
)

func setupProductTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, testutil.NewFakeIdentity(), testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	products := api.Group("/products")
	products.GET("", h.Product.List)
	products.POST("", h.Product.Create)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestProductCreateDuplicateCode tests the 409 on a taken catalog code.
func TestProductCreateDuplicateCode(t *testing.T) {
	env := setupProductTest(t)
	token := testutil.SalesTestToken()

	body := map[string]interface{}{"code": "P-001", "name": "น้ำปลาแท้ 700ml", "price": 35.0}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/products", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != "active" {
		t.Fatalf("expected default active status, got %v", data["status"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/products", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate code, got %d: %s", w.Code, w.Body.String())
	}
}
