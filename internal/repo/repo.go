// Package repo implements the file-backed repositories. Each repository
// owns its in-memory collection (the source of truth for the session),
// its backing store, and an ID allocator. Updates and deletes persist by
// rewriting the full snapshot; adds append.
package repo

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrSelfDelete        = errors.New("cannot delete your own account")
)

// Allocator issues monotonically increasing IDs for one entity type.
// Repositories seed it with max(existing)+1 at load so IDs persisted by
// earlier runs are never reused.
type Allocator struct {
	next int
}

// NewAllocator starts issuing at seed, or 1 if seed is lower.
func NewAllocator(seed int) *Allocator {
	if seed < 1 {
		seed = 1
	}
	return &Allocator{next: seed}
}

// Next returns the next ID. Never reused within a process lifetime.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}

func maxID[T any](items []T, id func(T) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max
}
