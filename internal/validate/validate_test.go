package validate

import "testing"

func TestProductID(t *testing.T) {
	for in, want := range map[string]bool{"1": true, " 42 ": true, "0": false, "-3": false, "abc": false, "": false} {
		if _, ok := ProductID(in); ok != want {
			t.Fatalf("ProductID(%q) ok=%v, want %v", in, ok, want)
		}
	}
}

func TestCartID(t *testing.T) {
	if _, ok := CartID("2f1c0e9a-6b7d-4c1e-9f0a-3b2d1c0e9a6b"); !ok {
		t.Fatal("uuid rejected")
	}
	if _, ok := CartID("12"); !ok {
		t.Fatal("legacy numeric id rejected")
	}
	for _, bad := range []string{"", "../etc", "a b", "<x>"} {
		if _, ok := CartID(bad); ok {
			t.Fatalf("CartID(%q) accepted", bad)
		}
	}
}

func TestLimit(t *testing.T) {
	if n, ok := Limit(""); !ok || n != 0 {
		t.Fatal("empty limit")
	}
	if n, ok := Limit("3"); !ok || n != 3 {
		t.Fatal("limit 3")
	}
	if _, ok := Limit("x"); ok {
		t.Fatal("bad limit accepted")
	}
}

func TestQty(t *testing.T) {
	if Qty(-1) != 0 || Qty(7) != 7 || Qty(500) != 50 {
		t.Fatal("qty clamp")
	}
}
