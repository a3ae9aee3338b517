package handler

import (
	"net/http"
	"testing"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
)

func setupPurchaseTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, testutil.NewFakeIdentity(), testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	tracking := api.Group("/OrderTracking")
	tracking.GET("", h.Purchase.List)
	tracking.POST("", h.Purchase.Create)
	tracking.POST("/import", h.Purchase.Import)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestPurchaseImportFlatArray tests the order-tracking import: flat
// array payload, comma-separated amounts and free-text payment status.
func TestPurchaseImportFlatArray(t *testing.T) {
	env := setupPurchaseTest(t)
	store := testutil.SeedStore(t, env.DB, "S0001", "ร้านป้าแดง")
	token := testutil.SalesTestToken()

	rows := []map[string]interface{}{
		{"ชื่อร้าน": store.Name, "วันที่": "15/03/2567", "ยอด": "1,250.50", "สถานะ": "ซื้อแล้ว ✅"},
		{"ชื่อร้าน": store.Name, "วันที่": "16/03/2567", "ยอด": "800", "สถานะ": "รอของ"},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/OrderTracking/import", rows, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["successCount"].(float64) != 2 {
		t.Fatalf("expected 2 successes, got %v", data["successCount"])
	}

	var purchases []entity.Purchase
	env.DB.Order("date").Find(&purchases)
	if len(purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(purchases))
	}
	if purchases[0].Amount != 1250.50 {
		t.Fatalf("expected comma-stripped amount 1250.50, got %v", purchases[0].Amount)
	}
	if purchases[0].Status != entity.PurchaseStatusPaid {
		t.Fatalf("expected paid, got %q", purchases[0].Status)
	}
	if purchases[1].Status != entity.PurchaseStatusPending {
		t.Fatalf("expected pending, got %q", purchases[1].Status)
	}
	if purchases[0].Date.Year() != 2024 {
		t.Fatalf("expected BE year normalized, got %d", purchases[0].Date.Year())
	}
}

// TestPurchaseListFilterByStatus tests the status filter on the listing.
func TestPurchaseListFilterByStatus(t *testing.T) {
	env := setupPurchaseTest(t)
	store := testutil.SeedStore(t, env.DB, "S0001", "ร้านป้าแดง")
	token := testutil.SalesTestToken()

	for _, status := range []string{"", "ซื้อแล้ว"} {
		rows := []map[string]interface{}{
			{"ชื่อร้าน": store.Name, "วันที่": "15/03/2024", "สถานะ": status},
		}
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/OrderTracking/import", rows, token)
		if w.Code != http.StatusOK {
			t.Fatalf("import failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/OrderTracking?status=paid", nil, token)
	data := testutil.ParseResponse(w)["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 paid purchase, got %d", len(data))
	}
}
