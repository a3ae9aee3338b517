package importer

import "testing"

func TestFieldResolvesFirstNonEmpty(t *testing.T) {
	row := Row{
		"ชื่อร้าน":   "  ร้านป้าแดง  ",
		"store_name": "should not win",
	}
	got, ok := Field(row, "ชื่อร้าน", "name", "store_name")
	if !ok || got != "ร้านป้าแดง" {
		t.Fatalf("expected trimmed Thai header value, got ok=%v %q", ok, got)
	}
}

func TestFieldSkipsEmptyCandidates(t *testing.T) {
	row := Row{
		"name":       "   ",
		"store_name": "Corner Mart",
	}
	got, ok := Field(row, "name", "store_name")
	if !ok || got != "Corner Mart" {
		t.Fatalf("expected fallback to next candidate, got ok=%v %q", ok, got)
	}

	if _, ok := Field(row, "missing", "also_missing"); ok {
		t.Fatal("expected no match for absent keys")
	}
}

func TestFieldCoercesNumbers(t *testing.T) {
	// JSON decodes numbers as float64; integer codes must not grow ".0".
	row := Row{"code": float64(1024)}
	got, ok := Field(row, "code")
	if !ok || got != "1024" {
		t.Fatalf("expected 1024, got ok=%v %q", ok, got)
	}

	row = Row{"amount": 12.5}
	got, _ = Field(row, "amount")
	if got != "12.5" {
		t.Fatalf("expected 12.5, got %q", got)
	}
}

func TestNumberStripsThousandsSeparators(t *testing.T) {
	row := Row{"ยอดซื้อ": "1,250.50"}
	got, ok := Number(row, "ยอดซื้อ", "amount")
	if !ok || got != 1250.50 {
		t.Fatalf("expected 1250.50, got ok=%v %v", ok, got)
	}

	if _, ok := Number(Row{"amount": "abc"}, "amount"); ok {
		t.Fatal("expected non-numeric value to be rejected")
	}
}
