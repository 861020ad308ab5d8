package repos_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"tiendajson/internal/domain"
	"tiendajson/internal/ids"
	"tiendajson/internal/ledger"
	"tiendajson/internal/repos"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func intp(i int) *int         { return &i }

func fields(title, code string) domain.ProductFields {
	return domain.ProductFields{
		Title:       strp(title),
		Description: strp("d"),
		Code:        strp(code),
		Price:       f64p(10),
		Stock:       intp(5),
		Category:    strp("x"),
	}
}

func newProductRepo(t *testing.T) (*repos.ProductRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	return repos.NewProductRepo(path), path
}

func TestProductRepo_AddAssignsSequentialIDs(t *testing.T) {
	r, _ := newProductRepo(t)

	a, err := r.Add(fields("A", "c1"))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != 1 || !a.Status || a.Thumbnails == nil {
		t.Fatalf("first product: %+v", a)
	}
	b, err := r.Add(fields("B", "c2"))
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != 2 {
		t.Fatalf("want id 2, got %d", b.ID)
	}

	for i := 0; i < 5; i++ {
		if _, err := r.Add(fields("more", "c")); err != nil {
			t.Fatal(err)
		}
	}
	list, err := r.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 7 {
		t.Fatalf("want 7 products, got %d", len(list))
	}
	seen := map[int]bool{}
	for i, p := range list {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if p.ID != i+1 {
			t.Fatalf("list out of call order at %d: %+v", i, p)
		}
	}
}

func TestProductRepo_AddNamesMissingField(t *testing.T) {
	r, path := newProductRepo(t)

	in := fields("A", "c1")
	in.Price = nil
	_, err := r.Add(in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "price" {
		t.Fatalf("want price validation error, got %v", err)
	}

	in = fields("A", "c1")
	in.Title = strp("  ")
	_, err = r.Add(in)
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("want title validation error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("failed add must not create the file")
	}
}

func TestProductRepo_UpdateChangesOnlySuppliedFields(t *testing.T) {
	r, path := newProductRepo(t)
	in := fields("A", "c1")
	in.Thumbnails = []string{"http://x/1.png"}
	orig, err := r.Add(in)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Update(orig.ID, domain.ProductFields{Stock: intp(42)})
	if err != nil {
		t.Fatal(err)
	}
	want := orig
	want.Stock = 42
	if got.Title != want.Title || got.Description != want.Description || got.Code != want.Code ||
		got.Price != want.Price || got.Status != want.Status || got.Category != want.Category ||
		got.Stock != 42 || got.ID != orig.ID || len(got.Thumbnails) != 1 {
		t.Fatalf("update touched other fields: %+v", got)
	}

	stored, err := r.Get(orig.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Stock != 42 {
		t.Fatalf("update not persisted: %+v", stored)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), `"stock": 42`) {
		t.Fatalf("file not rewritten: %s", b)
	}
}

func TestProductRepo_UpdateRejectsBlankText(t *testing.T) {
	r, _ := newProductRepo(t)
	p, _ := r.Add(fields("A", "c1"))
	_, err := r.Update(p.ID, domain.ProductFields{Title: strp("")})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestProductRepo_MissingIDLeavesFileUnchanged(t *testing.T) {
	r, path := newProductRepo(t)
	if _, err := r.Add(fields("A", "c1")); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	if _, err := r.Update(99, domain.ProductFields{Stock: intp(1)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update: want ErrNotFound, got %v", err)
	}
	if err := r.Delete(99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete: want ErrNotFound, got %v", err)
	}
	if _, err := r.Get(99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get: want ErrNotFound, got %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatal("file changed by failed mutation")
	}
}

func TestProductRepo_Delete(t *testing.T) {
	r, _ := newProductRepo(t)
	a, _ := r.Add(fields("A", "c1"))
	b, _ := r.Add(fields("B", "c2"))
	if err := r.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	list, _ := r.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected list after delete: %+v", list)
	}
	// ids are not reused while a higher id exists
	c, _ := r.Add(fields("C", "c3"))
	if c.ID != 3 {
		t.Fatalf("want id 3, got %d", c.ID)
	}
}

func TestProductRepo_ReadsLegacyRecords(t *testing.T) {
	r, path := newProductRepo(t)
	legacy := `[{"id":4,"title":"T","description":"D","code":"C","price":"12.5","stock":"3","category":"k"}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := r.Get(4)
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 12.5 || p.Stock != 3 || !p.Status || p.Thumbnails == nil {
		t.Fatalf("legacy defaults not applied: %+v", p)
	}
	n, _ := r.Add(fields("N", "c9"))
	if n.ID != 5 {
		t.Fatalf("want id 5 after legacy max 4, got %d", n.ID)
	}
}

func TestProductRepo_AddRefusesToWrapIDs(t *testing.T) {
	r, path := newProductRepo(t)
	top := `[{"id":` + strconv.Itoa(math.MaxInt) + `,"title":"T","description":"D","code":"C","price":1,"stock":1,"category":"k"}]`
	if err := os.WriteFile(path, []byte(top), 0o644); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	for i := 0; i < 2; i++ {
		p, err := r.Add(fields("N", "c9"))
		if !errors.Is(err, ids.ErrExhausted) {
			t.Fatalf("add %d: want ErrExhausted, got %+v %v", i, p, err)
		}
		if p.ID != 0 {
			t.Fatalf("add %d: returned id %d on failure", i, p.ID)
		}
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatal("file changed by refused add")
	}
}

// unwritablePath returns a path that loads as an empty collection but cannot
// be saved: a dangling symlink into a directory that does not exist.
func unwritablePath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.Symlink(filepath.Join(dir, "missing", "data.json"), path); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return path
}

func TestProductRepo_SaveFailureReturnsNoProduct(t *testing.T) {
	r := repos.NewProductRepo(unwritablePath(t))
	p, err := r.Add(fields("A", "c1"))
	if !ledger.IsWrite(err) {
		t.Fatalf("want WriteError, got %v", err)
	}
	if p.ID != 0 || p.Title != "" {
		t.Fatalf("failed add returned a product: %+v", p)
	}
	if list, err := r.List(); err != nil || len(list) != 0 {
		t.Fatalf("failed add left records: %+v %v", list, err)
	}
}
