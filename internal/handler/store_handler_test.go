package handler

import (
	"net/http"
	"testing"

	"github.com/aroifoods/salescrm/internal/middleware"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
)

func setupStoreTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, testutil.NewFakeIdentity(), testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	admin := middleware.RequireAdmin()

	stores := api.Group("/stores")
	stores.GET("", h.Store.List)
	stores.POST("", h.Store.Create)
	stores.GET("/:id", h.Store.Get)
	stores.PUT("/:id", h.Store.Update)
	stores.DELETE("/:id", admin, h.Store.Delete)
	stores.DELETE("", admin, h.Store.DeleteAll)
	stores.POST("/import", admin, h.Store.Import)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestStoreCreateGeneratesSequentialCodes tests that stores created
// without an explicit code draw from the zero-padded sequence.
func TestStoreCreateGeneratesSequentialCodes(t *testing.T) {
	env := setupStoreTest(t)
	token := testutil.AdminTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores",
		map[string]interface{}{"name": "ร้านป้าแดง"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["code"] != "S0001" {
		t.Fatalf("expected first generated code S0001, got %v", data["code"])
	}
	if data["status"] != "เปิดการขาย" {
		t.Fatalf("expected default open status, got %v", data["status"])
	}
	if data["payment"] != "cash" {
		t.Fatalf("expected default payment cash, got %v", data["payment"])
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores",
		map[string]interface{}{"name": "ร้านลุงมี"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["code"] != "S0002" {
		t.Fatalf("expected second generated code S0002, got %v", data["code"])
	}
}

// TestStoreCodeSequenceIgnoresFreeTextCodes tests that auto-provisioned
// stores whose free-text code starts with the sequence prefix do not
// derail code generation.
func TestStoreCodeSequenceIgnoresFreeTextCodes(t *testing.T) {
	env := setupStoreTest(t)
	token := testutil.AdminTestToken()

	// "Seven Mart" sorts above any zero-padded "S" code but carries no
	// numeric suffix.
	testutil.SeedStore(t, env.DB, "Seven Mart", "Seven Mart")
	testutil.SeedStore(t, env.DB, "S0001", "ร้านเดิม")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores",
		map[string]interface{}{"name": "ร้านใหม่"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["code"] != "S0002" {
		t.Fatalf("expected S0002 after S0001, got %v", data["code"])
	}
}

// TestStoreCreateDuplicateExplicitCode tests the 409 on a taken code.
func TestStoreCreateDuplicateExplicitCode(t *testing.T) {
	env := setupStoreTest(t)
	token := testutil.AdminTestToken()
	testutil.SeedStore(t, env.DB, "S9000", "ร้านเดิม")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores",
		map[string]interface{}{"name": "ร้านใหม่", "code": "S9000"}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40900 {
		t.Fatalf("expected envelope code 40900, got %v", resp["code"])
	}
}

// TestStoreImportPartialFailure tests that one bad row fails alone: the
// batch keeps going, the report carries the row number, HTTP stays 200.
func TestStoreImportPartialFailure(t *testing.T) {
	env := setupStoreTest(t)
	token := testutil.AdminTestToken()

	rows := []map[string]interface{}{
		{"ชื่อร้าน": "ร้าน A"},
		{"ชื่อร้าน": "ร้าน B", "สถานะ": "ปิดการขาย"},
		{"หมายเหตุ": "no identifying fields at all"},
		{"ชื่อร้าน": "ร้าน C"},
		{"ชื่อร้าน": "ร้าน D"},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores/import",
		map[string]interface{}{"stores": rows}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite row failure, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["success"].(float64) != 4 {
		t.Fatalf("expected 4 successes, got %v", data["success"])
	}
	if data["failed"].(float64) != 1 {
		t.Fatalf("expected 1 failure, got %v", data["failed"])
	}
	errs := data["errors"].([]interface{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(errs))
	}
	// Slice index 2 is spreadsheet row 4 (header + 1-indexing).
	if errs[0].(map[string]interface{})["index"].(float64) != 4 {
		t.Fatalf("expected row error index 4, got %v", errs[0])
	}

	var count int64
	env.DB.Table("stores").Count(&count)
	if count != 4 {
		t.Fatalf("expected 4 stores persisted, got %d", count)
	}
}

// TestStoreImportUpsertsByName tests that re-importing a known store
// updates the row instead of duplicating it.
func TestStoreImportUpsertsByName(t *testing.T) {
	env := setupStoreTest(t)
	token := testutil.AdminTestToken()
	seeded := testutil.SeedStore(t, env.DB, "S0100", "ร้านป้าแดง")

	rows := []map[string]interface{}{
		{"ชื่อร้าน": "ร้านป้าแดง", "เจ้าของ": "ป้าแดง", "เบอร์โทร": "081-234-5678"},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores/import",
		map[string]interface{}{"stores": rows}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Table("stores").Count(&count)
	if count != 1 {
		t.Fatalf("expected upsert, not duplicate; got %d stores", count)
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/stores/"+seeded.ID, nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["owner"] != "ป้าแดง" {
		t.Fatalf("expected owner applied on upsert, got %v", data["owner"])
	}
	if data["code"] != "S0100" {
		t.Fatalf("expected original code kept, got %v", data["code"])
	}
}

// TestStoreAdminGate tests that destructive store routes reject
// non-admin tokens.
func TestStoreAdminGate(t *testing.T) {
	env := setupStoreTest(t)
	store := testutil.SeedStore(t, env.DB, "S0001", "ร้านทดสอบ")

	salesToken := testutil.SalesTestToken()
	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/stores/"+store.ID, nil, salesToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for sales token, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/stores/"+store.ID, nil, testutil.AdminTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin token, got %d: %s", w.Code, w.Body.String())
	}
}

// TestStoreValidation tests the structured field errors on a bad create.
func TestStoreValidation(t *testing.T) {
	env := setupStoreTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/stores",
		map[string]interface{}{"owner": "ไม่มีชื่อร้าน"}, testutil.AdminTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40000 {
		t.Fatalf("expected envelope code 40000, got %v", resp["code"])
	}
	errs, ok := resp["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected field errors, got %v", resp["errors"])
	}
	if errs[0].(map[string]interface{})["path"] != "name" {
		t.Fatalf("expected path name, got %v", errs[0])
	}
}
