package repo

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"bms/internal/models"
	"bms/internal/store"
)

// Products is the product repository.
type Products struct {
	store *store.Store[models.Product]
	items []models.Product
	ids   *Allocator
}

// OpenProducts loads the product file and seeds the ID allocator.
func OpenProducts(path string) (*Products, error) {
	st := store.New(path, store.ProductCodec{})
	items, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	seed := maxID(items, func(p models.Product) int { return p.ID }) + 1
	return &Products{store: st, items: items, ids: NewAllocator(seed)}, nil
}

// All returns the collection in file order.
func (r *Products) All() []models.Product {
	out := make([]models.Product, len(r.items))
	copy(out, r.items)
	return out
}

// FindByID returns the product with the given ID.
func (r *Products) FindByID(id int) (models.Product, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
}

// SearchByName returns every product whose name contains term,
// case-insensitively, in file order. No match is not an error.
func (r *Products) SearchByName(term string) []models.Product {
	term = strings.ToLower(term)
	var out []models.Product
	for _, p := range r.items {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// BySupplier returns every product owned by the given supplier.
func (r *Products) BySupplier(supplierID int) []models.Product {
	var out []models.Product
	for _, p := range r.items {
		if p.SupplierID == supplierID {
			out = append(out, p)
		}
	}
	return out
}

// Add assigns an ID, validates, and appends the product to the file.
func (r *Products) Add(p models.Product) (models.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return models.Product{}, fmt.Errorf("product name is required")
	}
	if p.Price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: %s", ErrInvalidPrice, p.Price)
	}
	if p.Quantity < 0 {
		return models.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, p.Quantity)
	}
	p.ID = r.ids.Next()
	r.items = append(r.items, p)
	if err := r.store.Append(p); err != nil {
		r.items = r.items[:len(r.items)-1]
		return models.Product{}, err
	}
	return p, nil
}

// ProductUpdate is a partial update; nil fields keep the current value.
type ProductUpdate struct {
	Name        *string
	Price       *decimal.Decimal
	Quantity    *int
	Category    *string
	Description *string
	SupplierID  *int
}

// Update applies a partial update and rewrites the file.
func (r *Products) Update(id int, upd ProductUpdate) (models.Product, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	p := r.items[idx]
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return models.Product{}, fmt.Errorf("product name is required")
		}
		p.Name = *upd.Name
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return models.Product{}, fmt.Errorf("%w: %s", ErrInvalidPrice, upd.Price)
		}
		p.Price = *upd.Price
	}
	if upd.Quantity != nil {
		if *upd.Quantity < 0 {
			return models.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, *upd.Quantity)
		}
		p.Quantity = *upd.Quantity
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.SupplierID != nil {
		p.SupplierID = *upd.SupplierID
	}
	r.items[idx] = p
	if err := r.store.OverwriteAll(r.items); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes the product and rewrites the file.
func (r *Products) Delete(id int) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return r.store.OverwriteAll(r.items)
}

// AddStock raises stock by n and persists. n must be positive.
func (r *Products) AddStock(id, n int) (models.Product, error) {
	if n <= 0 {
		return models.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	r.items[idx].Quantity += n
	if err := r.store.OverwriteAll(r.items); err != nil {
		r.items[idx].Quantity -= n
		return models.Product{}, err
	}
	return r.items[idx], nil
}

// RemoveStock lowers stock by n and persists. Fails if n is not positive
// or exceeds the quantity on hand; stock is never driven negative.
func (r *Products) RemoveStock(id, n int) (models.Product, error) {
	if n <= 0 {
		return models.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if n > r.items[idx].Quantity {
		return models.Product{}, fmt.Errorf("%w: want %d, have %d", ErrInsufficientStock, n, r.items[idx].Quantity)
	}
	r.items[idx].Quantity -= n
	if err := r.store.OverwriteAll(r.items); err != nil {
		r.items[idx].Quantity += n
		return models.Product{}, err
	}
	return r.items[idx], nil
}

// Reserve lowers live stock in memory only, for order assembly. The
// caller persists the snapshot via Save on finalize. Same bounds as
// RemoveStock.
func (r *Products) Reserve(id, n int) (models.Product, error) {
	if n <= 0 {
		return models.Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if n > r.items[idx].Quantity {
		return models.Product{}, fmt.Errorf("%w: want %d, have %d", ErrInsufficientStock, n, r.items[idx].Quantity)
	}
	r.items[idx].Quantity -= n
	return r.items[idx], nil
}

// Release returns previously reserved stock, in memory only.
func (r *Products) Release(id, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	r.items[idx].Quantity += n
	return nil
}

// Save rewrites the file from the in-memory collection.
func (r *Products) Save() error {
	return r.store.OverwriteAll(r.items)
}

func (r *Products) indexOf(id int) int {
	for i, p := range r.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
