package repo

import (
	"fmt"
	"strings"

	"bms/internal/models"
	"bms/internal/store"
)

// Staff is the staff account repository.
type Staff struct {
	store *store.Store[models.Staff]
	items []models.Staff
	ids   *Allocator
}

// OpenStaff loads the staff file and seeds the ID allocator.
func OpenStaff(path string) (*Staff, error) {
	st := store.New(path, store.StaffCodec{})
	items, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	seed := maxID(items, func(s models.Staff) int { return s.ID }) + 1
	return &Staff{store: st, items: items, ids: NewAllocator(seed)}, nil
}

// All returns the collection in file order.
func (r *Staff) All() []models.Staff {
	out := make([]models.Staff, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns the number of staff accounts on file.
func (r *Staff) Count() int { return len(r.items) }

// FindByID returns the staff member with the given ID.
func (r *Staff) FindByID(id int) (models.Staff, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Staff{}, fmt.Errorf("%w: staff %d", ErrNotFound, id)
}

// FindByUsername returns the staff member with the exact username.
func (r *Staff) FindByUsername(username string) (models.Staff, error) {
	for _, s := range r.items {
		if s.Username == username {
			return s, nil
		}
	}
	return models.Staff{}, fmt.Errorf("%w: staff %q", ErrNotFound, username)
}

// Register assigns an ID and appends the account. Usernames are unique.
func (r *Staff) Register(s models.Staff) (models.Staff, error) {
	if strings.TrimSpace(s.Username) == "" {
		return models.Staff{}, fmt.Errorf("staff username is required")
	}
	if _, err := r.FindByUsername(s.Username); err == nil {
		return models.Staff{}, fmt.Errorf("%w: %s", ErrDuplicateUsername, s.Username)
	}
	if s.Role == 0 {
		s.Role = models.RoleStaff
	}
	s.ID = r.ids.Next()
	r.items = append(r.items, s)
	if err := r.store.Append(s); err != nil {
		r.items = r.items[:len(r.items)-1]
		return models.Staff{}, err
	}
	return s, nil
}

// StaffUpdate is a partial update; nil fields keep the current value.
// Password, when set, must already be hashed.
type StaffUpdate struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
	Role     *models.Role
}

// Update applies a partial update and rewrites the file.
func (r *Staff) Update(id int, upd StaffUpdate) (models.Staff, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Staff{}, fmt.Errorf("%w: staff %d", ErrNotFound, id)
	}
	s := r.items[idx]
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.Phone != nil {
		s.Phone = *upd.Phone
	}
	if upd.Email != nil {
		s.Email = *upd.Email
	}
	if upd.Password != nil {
		s.Password = *upd.Password
	}
	if upd.Role != nil {
		if _, err := models.ParseRole(int(*upd.Role)); err != nil {
			return models.Staff{}, err
		}
		s.Role = *upd.Role
	}
	r.items[idx] = s
	if err := r.store.OverwriteAll(r.items); err != nil {
		return models.Staff{}, err
	}
	return s, nil
}

// Delete removes a staff account and rewrites the file. The acting user
// may not delete their own account.
func (r *Staff) Delete(id, actingID int) error {
	if id == actingID {
		return ErrSelfDelete
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: staff %d", ErrNotFound, id)
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return r.store.OverwriteAll(r.items)
}

func (r *Staff) indexOf(id int) int {
	for i, s := range r.items {
		if s.ID == id {
			return i
		}
	}
	return -1
}
