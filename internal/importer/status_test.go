package importer

import (
	"testing"

	"github.com/aroifoods/salescrm/internal/entity"
)

func TestPaymentStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"ซื้อแล้ว", entity.PurchaseStatusPaid},
		{"ลูกค้าซื้อแล้วเมื่อวาน", entity.PurchaseStatusPaid},
		{"PAID", entity.PurchaseStatusPaid},
		{"✅", entity.PurchaseStatusPaid},
		{"✔ จ่ายครบ", entity.PurchaseStatusPaid},
		{"รอชำระ", entity.PurchaseStatusPending},
		{"unpaid", entity.PurchaseStatusPending},
		{"", entity.PurchaseStatusPending},
	}
	for _, c := range cases {
		if got := PaymentStatus(c.raw); got != c.want {
			t.Errorf("PaymentStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestDealStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"ปิดการขาย", entity.DealStatusClosed},
		{"closed", entity.DealStatusClosed},
		{"close", entity.DealStatusClosed},
		// "เปิด" contains "ปิด"; the open marker must not read as closed.
		{"เปิดการขาย", entity.DealStatusOpen},
		{"เปิดดีลใหม่", entity.DealStatusOpen},
		{"กำลังคุย", entity.DealStatusOpen},
		{"", entity.DealStatusOpen},
	}
	for _, c := range cases {
		if got := DealStatus(c.raw); got != c.want {
			t.Errorf("DealStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestIssueStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"เสร็จแล้ว", entity.IssueStatusDone},
		{"done", entity.IssueStatusDone},
		{"แก้ไขแล้ว", entity.IssueStatusDone},
		{"กำลังแก้", entity.IssueStatusFixing},
		{"fixing", entity.IssueStatusFixing},
		{"อยู่ระหว่างดำเนินการ", entity.IssueStatusFixing},
		{"รอดำเนินการ", entity.IssueStatusFixing},
		{"", entity.IssueStatusPending},
		{"new", entity.IssueStatusPending},
	}
	for _, c := range cases {
		if got := IssueStatus(c.raw); got != c.want {
			t.Errorf("IssueStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestStoreStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"ปิดการขาย", entity.StoreStatusClosed},
		{"closed", entity.StoreStatusClosed},
		{"เปิดการขาย", entity.StoreStatusOpen},
		{"ร้านเปิดปกติ", entity.StoreStatusOpen},
		{"", entity.StoreStatusOpen},
	}
	for _, c := range cases {
		if got := StoreStatus(c.raw); got != c.want {
			t.Errorf("StoreStatus(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
