package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
	"github.com/google/uuid"
)

func setupProfileTest(t *testing.T) (*testutil.TestEnv, *testutil.FakeIdentity) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	idp := testutil.NewFakeIdentity()
	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, idp, testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	profile := api.Group("/profile")
	profile.GET("", h.Profile.List)
	profile.POST("", h.Profile.Create)
	profile.GET("/check", h.Profile.Check)

	return &testutil.TestEnv{DB: db, Router: router, T: t}, idp
}

func seedVisitWithSales(t *testing.T, env *testutil.TestEnv, sales string) {
	t.Helper()
	visit := &entity.Visit{
		ID:         uuid.New().String(),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Sales:      sales,
		DealStatus: entity.DealStatusOpen,
	}
	if err := env.DB.Create(visit).Error; err != nil {
		t.Fatalf("Failed to seed visit: %v", err)
	}
}

// TestProfileCreateMergesHistoricalNames tests that registration rewrites
// pre-registration rep names onto the canonical one and flags the
// identity record.
func TestProfileCreateMergesHistoricalNames(t *testing.T) {
	env, idp := setupProfileTest(t)
	idp.AddUser("test-sales-001", "สมชาย ใจดี", "somchai@test.com")
	token := testutil.SalesTestToken()

	seedVisitWithSales(t, env, "สมชาย ใจดี (ยังไม่ลงทะเบียน)")
	seedVisitWithSales(t, env, "สมชาย  ใจดี") // stray double space
	seedVisitWithSales(t, env, "สมหญิง")      // someone else, untouched

	body := map[string]interface{}{
		"clerkId": "test-sales-001",
		"name":    "สมชาย ใจดี",
		"email":   "somchai@test.com",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/profile", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var merged int64
	env.DB.Table("visits").Where("sales = ?", "สมชาย ใจดี").Count(&merged)
	if merged != 2 {
		t.Fatalf("expected 2 visits merged onto canonical name, got %d", merged)
	}
	var untouched int64
	env.DB.Table("visits").Where("sales = ?", "สมหญิง").Count(&untouched)
	if untouched != 1 {
		t.Fatal("expected unrelated rep left alone")
	}

	user, _ := idp.CurrentUser(context.Background(), "test-sales-001")
	if registered, _ := user.Metadata["registered"].(bool); !registered {
		t.Fatal("expected identity record flagged as registered")
	}

	// Registering the same identity twice conflicts.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/profile", body, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate registration, got %d", w.Code)
	}
}

// TestProfileCreateDefaultsClerkIDFromToken tests that a create body
// without a clerkId falls back to the authenticated caller's id.
func TestProfileCreateDefaultsClerkIDFromToken(t *testing.T) {
	env, idp := setupProfileTest(t)
	idp.AddUser("test-sales-001", "สมชาย", "somchai@test.com")

	body := map[string]interface{}{"name": "สมชาย"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/profile", body, testutil.SalesTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["clerkId"] != "test-sales-001" {
		t.Fatalf("expected clerkId taken from token, got %v", data["clerkId"])
	}
}

// TestProfileCheck tests the registered flag round-trip.
func TestProfileCheck(t *testing.T) {
	env, idp := setupProfileTest(t)
	idp.AddUser("test-sales-001", "สมชาย", "somchai@test.com")
	token := testutil.SalesTestToken()

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/profile/check", nil, token)
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["registered"].(bool) {
		t.Fatal("expected unregistered before profile creation")
	}

	body := map[string]interface{}{"clerkId": "test-sales-001", "name": "สมชาย"}
	if w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/profile", body, token); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/profile/check", nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if !data["registered"].(bool) {
		t.Fatal("expected registered after profile creation")
	}
}
