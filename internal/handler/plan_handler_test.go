package handler

import (
	"net/http"
	"testing"

	"github.com/aroifoods/salescrm/internal/middleware"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
)

func setupPlanTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, testutil.NewFakeIdentity(), testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	admin := middleware.RequireAdmin()

	plans := api.Group("/plans")
	plans.GET("", h.Plan.List)
	plans.POST("", h.Plan.Create)
	plans.POST("/import", admin, h.Plan.Import)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestPlanOrderSequencesPerRepAndDay tests that plans for the same rep
// on the same day are numbered 1, 2, 3 while another rep's day starts
// back at 1.
func TestPlanOrderSequencesPerRepAndDay(t *testing.T) {
	env := setupPlanTest(t)
	token := testutil.SalesTestToken()

	create := func(sales, date string) map[string]interface{} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans",
			map[string]interface{}{"sales": sales, "date": date}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		return testutil.ParseResponse(w)["data"].(map[string]interface{})
	}

	if got := create("สมชาย", "2024-03-15T00:00:00Z")["order"]; got != "1" {
		t.Fatalf("expected order 1, got %v", got)
	}
	if got := create("สมชาย", "2024-03-15T00:00:00Z")["order"]; got != "2" {
		t.Fatalf("expected order 2, got %v", got)
	}
	if got := create("สมชาย", "2024-03-15T00:00:00Z")["order"]; got != "3" {
		t.Fatalf("expected order 3, got %v", got)
	}

	// A different rep and a different day each restart the sequence.
	if got := create("สมหญิง", "2024-03-15T00:00:00Z")["order"]; got != "1" {
		t.Fatalf("expected other rep to start at 1, got %v", got)
	}
	if got := create("สมชาย", "2024-03-16T00:00:00Z")["order"]; got != "1" {
		t.Fatalf("expected next day to start at 1, got %v", got)
	}
}

// TestPlanCreateKeepsExplicitOrder tests that a caller-supplied sequence
// number is stored untouched.
func TestPlanCreateKeepsExplicitOrder(t *testing.T) {
	env := setupPlanTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans",
		map[string]interface{}{"sales": "สมชาย", "date": "2024-03-15T00:00:00Z", "order": "7"},
		testutil.SalesTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["order"] != "7" {
		t.Fatalf("expected explicit order kept, got %v", data["order"])
	}
}

// TestPlanImportSequencesRows tests that imported rows for one rep and
// day pick up consecutive sequence numbers and auto-provision stores.
func TestPlanImportSequencesRows(t *testing.T) {
	env := setupPlanTest(t)
	token := testutil.AdminTestToken()

	rows := []map[string]interface{}{
		{"ชื่อร้าน": "ร้าน A", "เซลล์": "สมชาย", "วันที่": "15/03/2024"},
		{"ชื่อร้าน": "ร้าน B", "เซลล์": "สมชาย", "วันที่": "15/03/2024"},
		{"ชื่อร้าน": "ร้าน C"}, // no rep
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/import",
		map[string]interface{}{"plans": rows}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["successCount"].(float64) != 2 {
		t.Fatalf("expected 2 successes, got %v", data["successCount"])
	}
	errs := data["errors"].([]interface{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error for the rep-less row, got %v", errs)
	}

	var orders []string
	env.DB.Table("plans").Where("sales = ?", "สมชาย").Order("sort_order").Pluck("sort_order", &orders)
	if len(orders) != 2 || orders[0] != "1" || orders[1] != "2" {
		t.Fatalf("expected orders [1 2], got %v", orders)
	}
}
