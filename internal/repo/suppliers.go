package repo

import (
	"fmt"
	"strings"

	"bms/internal/models"
	"bms/internal/store"
)

// Suppliers is the supplier repository.
type Suppliers struct {
	store *store.Store[models.Supplier]
	items []models.Supplier
	ids   *Allocator
}

// OpenSuppliers loads the supplier file and seeds the ID allocator.
func OpenSuppliers(path string) (*Suppliers, error) {
	st := store.New(path, store.SupplierCodec{})
	items, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	seed := maxID(items, func(s models.Supplier) int { return s.ID }) + 1
	return &Suppliers{store: st, items: items, ids: NewAllocator(seed)}, nil
}

// All returns the collection in file order.
func (r *Suppliers) All() []models.Supplier {
	out := make([]models.Supplier, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns the number of suppliers on file.
func (r *Suppliers) Count() int { return len(r.items) }

// FindByID returns the supplier with the given ID.
func (r *Suppliers) FindByID(id int) (models.Supplier, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Supplier{}, fmt.Errorf("%w: supplier %d", ErrNotFound, id)
}

// FindByUsername returns the supplier with the exact username.
func (r *Suppliers) FindByUsername(username string) (models.Supplier, error) {
	for _, s := range r.items {
		if s.Username == username {
			return s, nil
		}
	}
	return models.Supplier{}, fmt.Errorf("%w: supplier %q", ErrNotFound, username)
}

// Add assigns an ID and appends the supplier. Usernames are unique.
func (r *Suppliers) Add(s models.Supplier) (models.Supplier, error) {
	if strings.TrimSpace(s.Username) == "" {
		return models.Supplier{}, fmt.Errorf("supplier username is required")
	}
	if _, err := r.FindByUsername(s.Username); err == nil {
		return models.Supplier{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, s.Username)
	}
	if s.Status == 0 {
		s.Status = models.SupplierActive
	}
	s.ID = r.ids.Next()
	r.items = append(r.items, s)
	if err := r.store.Append(s); err != nil {
		r.items = r.items[:len(r.items)-1]
		return models.Supplier{}, err
	}
	return s, nil
}

// SupplierUpdate is a partial update; nil fields keep the current value.
// Password, when set, must already be hashed.
type SupplierUpdate struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Password      *string
	Status        *models.SupplierStatus
}

// Update applies a partial update and rewrites the file.
func (r *Suppliers) Update(id int, upd SupplierUpdate) (models.Supplier, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Supplier{}, fmt.Errorf("%w: supplier %d", ErrNotFound, id)
	}
	s := r.items[idx]
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.ContactPerson != nil {
		s.ContactPerson = *upd.ContactPerson
	}
	if upd.Phone != nil {
		s.Phone = *upd.Phone
	}
	if upd.Email != nil {
		s.Email = *upd.Email
	}
	if upd.Address != nil {
		s.Address = *upd.Address
	}
	if upd.Password != nil {
		s.Password = *upd.Password
	}
	if upd.Status != nil {
		s.Status = *upd.Status
	}
	r.items[idx] = s
	if err := r.store.OverwriteAll(r.items); err != nil {
		return models.Supplier{}, err
	}
	return s, nil
}

// Delete removes the supplier and rewrites the file. Products that
// reference it keep their SupplierID; 0 stays the only "unowned" marker.
func (r *Suppliers) Delete(id int) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: supplier %d", ErrNotFound, id)
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return r.store.OverwriteAll(r.items)
}

func (r *Suppliers) indexOf(id int) int {
	for i, s := range r.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}
