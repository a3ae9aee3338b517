package importer

import (
	"strings"

	"github.com/aroifoods/salescrm/internal/entity"
)

// PaymentStatus maps a free-text purchase status onto paid/pending.
// Reps mark paid rows with "ซื้อแล้ว", "paid" or a checkmark emoji;
// everything else stays pending.
func PaymentStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "ซื้อแล้ว"),
		s == "paid",
		strings.Contains(s, "✅"),
		strings.Contains(s, "✔"):
		return entity.PurchaseStatusPaid
	default:
		return entity.PurchaseStatusPending
	}
}

// DealStatus maps a free-text deal outcome onto open/closed. The open
// word "เปิด" contains the closed word "ปิด", so the open marker must
// win before the closed check runs.
func DealStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "เปิด"):
		return entity.DealStatusOpen
	case strings.Contains(s, "ปิด"), s == "closed", s == "close":
		return entity.DealStatusClosed
	default:
		return entity.DealStatusOpen
	}
}

// IssueStatus maps a free-text ticket state onto pending/fixing/done.
func IssueStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "เสร็จ"), strings.Contains(s, "done"), strings.Contains(s, "แก้ไขแล้ว"):
		return entity.IssueStatusDone
	case strings.Contains(s, "กำลัง"), strings.Contains(s, "fixing"), strings.Contains(s, "ดำเนินการ"):
		return entity.IssueStatusFixing
	default:
		return entity.IssueStatusPending
	}
}

// StoreStatus maps a free-text store state onto the open/closed values
// the dashboard filters on. As in DealStatus, "เปิด" must be checked
// before its substring "ปิด".
func StoreStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "เปิด"):
		return entity.StoreStatusOpen
	case strings.Contains(s, "ปิด"), strings.Contains(s, "closed"), strings.Contains(s, "close"):
		return entity.StoreStatusClosed
	default:
		return entity.StoreStatusOpen
	}
}
