package handler

import (
	"net/http"
	"testing"

	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/middleware"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/aroifoods/salescrm/internal/testutil"
)

func setupIssueTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(db, repos, testutil.NewFakeIdentity(), testutil.TestConfig(), testutil.TestLogger())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	admin := middleware.RequireAdmin()

	issues := api.Group("/issues")
	issues.GET("", h.Issue.List)
	issues.POST("", h.Issue.Create)
	issues.POST("/import", admin, h.Issue.Import)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestIssueImportRequiresDetail tests that the ticket text is the one
// required field; store linkage is optional.
func TestIssueImportRequiresDetail(t *testing.T) {
	env := setupIssueTest(t)
	token := testutil.AdminTestToken()

	rows := []map[string]interface{}{
		{"รายละเอียด": "ของส่งช้า", "สถานะ": "กำลังแก้", "วันที่": "15/03/2024"},
		{"ประเภท": "ขนส่ง"}, // no detail
		{"รายละเอียด": "บรรจุภัณฑ์รั่ว", "ชื่อร้าน": "ร้านที่ไม่เคยเห็น"},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/issues/import",
		map[string]interface{}{"issues": rows}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["successCount"].(float64) != 2 {
		t.Fatalf("expected 2 successes, got %v", data["successCount"])
	}
	if len(data["errors"].([]interface{})) != 1 {
		t.Fatalf("expected 1 error, got %v", data["errors"])
	}
	// Third row named an unknown store and should have provisioned it.
	warnings, _ := data["warnings"].([]interface{})
	if len(warnings) != 1 {
		t.Fatalf("expected auto-provision warning, got %v", data["warnings"])
	}

	var issue entity.Issue
	if err := env.DB.Where("detail = ?", "ของส่งช้า").First(&issue).Error; err != nil {
		t.Fatalf("expected issue persisted: %v", err)
	}
	if issue.Status != entity.IssueStatusFixing {
		t.Fatalf("expected inferred fixing status, got %q", issue.Status)
	}
	if issue.MasterID != nil {
		t.Fatal("expected store-less issue to have no master link")
	}
}
