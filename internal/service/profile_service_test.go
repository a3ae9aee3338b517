package service

import "testing"

func TestNameKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"สมชาย (ยังไม่ลงทะเบียน)", "สมชาย"},
		{"สมชาย", "สมชาย"},
		{"  Somchai   Jaidee  ", "somchai jaidee"},
		{"Somchai (unregistered)", "somchai"},
		{"SOMCHAI JAIDEE", "somchai jaidee"},
		{"(ยังไม่ลงทะเบียน)", ""},
	}
	for _, c := range cases {
		if got := NameKey(c.in); got != c.want {
			t.Errorf("NameKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNameKeyMatchesAcrossMarkerVariants(t *testing.T) {
	// A pre-registration visit row and the canonical profile name must
	// collapse to the same key or the merge never finds them.
	if NameKey("สมชาย ใจดี (ยังไม่ลงทะเบียน)") != NameKey("สมชาย ใจดี") {
		t.Fatal("marker variant should share the canonical key")
	}
	if NameKey("somchai  jaidee") != NameKey("Somchai Jaidee") {
		t.Fatal("case and spacing variants should share the canonical key")
	}
}
