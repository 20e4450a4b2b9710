package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"bms/internal/models"
)

func openTestProducts(t *testing.T, dir string) *Products {
	t.Helper()
	r, err := OpenProducts(filepath.Join(dir, "products.txt"))
	if err != nil {
		t.Fatalf("OpenProducts: %v", err)
	}
	return r
}

func addWidget(t *testing.T, r *Products, qty int) models.Product {
	t.Helper()
	p, err := r.Add(models.Product{
		Name: "Widget", Price: decimal.RequireFromString("9.99"), Quantity: qty, Category: "Tools",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	return p
}

func TestProducts_AddAssignsUniqueIDs(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		p := addWidget(t, r, 1)
		if seen[p.ID] {
			t.Fatalf("ID %d issued twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestProducts_FindByIDAfterAdd(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	p := addWidget(t, r, 10)
	got, err := r.FindByID(p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Widget" || !got.Price.Equal(p.Price) {
		t.Errorf("FindByID returned wrong record: %+v", got)
	}
}

func TestProducts_DeleteThenFind(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	p := addWidget(t, r, 10)
	if err := r.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.FindByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestProducts_AllocatorSeedsFromFile(t *testing.T) {
	dir := t.TempDir()
	r := openTestProducts(t, dir)
	p := addWidget(t, r, 10)

	// Reopen: a fresh process must not reuse persisted IDs.
	r2 := openTestProducts(t, dir)
	p2 := addWidget(t, r2, 5)
	if p2.ID <= p.ID {
		t.Errorf("Reopened repo reused ID space: first %d, second %d", p.ID, p2.ID)
	}
}

func TestProducts_ReloadedEqualsInMemory(t *testing.T) {
	dir := t.TempDir()
	r := openTestProducts(t, dir)
	addWidget(t, r, 10)
	r.Add(models.Product{Name: "Gadget, deluxe", Price: decimal.RequireFromString("3.25"), Quantity: 2})

	r2 := openTestProducts(t, dir)
	want, got := r.All(), r2.All()
	if len(want) != len(got) {
		t.Fatalf("Expected %d products after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i].ID != got[i].ID || want[i].Name != got[i].Name ||
			!want[i].Price.Equal(got[i].Price) || want[i].Quantity != got[i].Quantity {
			t.Errorf("Record %d mismatch:\nwant %+v\ngot  %+v", i, want[i], got[i])
		}
	}
}

func TestProducts_SearchByName(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	addWidget(t, r, 1)
	r.Add(models.Product{Name: "Super Widget", Price: decimal.New(5, 0), Quantity: 1})
	r.Add(models.Product{Name: "Gadget", Price: decimal.New(5, 0), Quantity: 1})

	got := r.SearchByName("wIdGeT")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Widget" || got[1].Name != "Super Widget" {
		t.Errorf("Match order not preserved: %+v", got)
	}
	if len(r.SearchByName("nothing")) != 0 {
		t.Error("Expected no matches for absent term")
	}
}

func TestProducts_BySupplier(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	r.Add(models.Product{Name: "Mine", Price: decimal.New(1, 0), Quantity: 1, SupplierID: 7})
	r.Add(models.Product{Name: "Theirs", Price: decimal.New(1, 0), Quantity: 1, SupplierID: 8})
	r.Add(models.Product{Name: "Legacy", Price: decimal.New(1, 0), Quantity: 1})

	got := r.BySupplier(7)
	if len(got) != 1 || got[0].Name != "Mine" {
		t.Errorf("BySupplier(7) = %+v", got)
	}
}

func TestProducts_AddRejectsNegativeValues(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	if _, err := r.Add(models.Product{Name: "Bad", Price: decimal.RequireFromString("-1"), Quantity: 1}); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("Expected ErrInvalidPrice, got %v", err)
	}
	if _, err := r.Add(models.Product{Name: "Bad", Price: decimal.New(1, 0), Quantity: -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
}

func TestProducts_PartialUpdate(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	p := addWidget(t, r, 10)

	newPrice := decimal.RequireFromString("12.50")
	got, err := r.Update(p.ID, ProductUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.Price.Equal(newPrice) {
		t.Errorf("Price not updated: %s", got.Price)
	}
	if got.Name != "Widget" || got.Quantity != 10 {
		t.Errorf("Nil fields must keep current values: %+v", got)
	}

	negative := decimal.RequireFromString("-5")
	if _, err := r.Update(p.ID, ProductUpdate{Price: &negative}); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("Expected ErrInvalidPrice, got %v", err)
	}
}

func TestProducts_RemoveStock(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	p := addWidget(t, r, 10)

	got, err := r.RemoveStock(p.ID, 3)
	if err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	if got.Quantity != 7 {
		t.Errorf("Expected quantity 7, got %d", got.Quantity)
	}

	if _, err := r.RemoveStock(p.ID, 8); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}
	if _, err := r.RemoveStock(p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity for n=0, got %v", err)
	}
	if _, err := r.RemoveStock(p.ID, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity for n<0, got %v", err)
	}

	// Failures leave stock untouched.
	cur, _ := r.FindByID(p.ID)
	if cur.Quantity != 7 {
		t.Errorf("Failed removals changed stock: %d", cur.Quantity)
	}
}

func TestProducts_AddStock(t *testing.T) {
	r := openTestProducts(t, t.TempDir())
	p := addWidget(t, r, 1)
	got, err := r.AddStock(p.ID, 4)
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if got.Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", got.Quantity)
	}
	if _, err := r.AddStock(p.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
}
