package repo

import (
	"errors"
	"fmt"
	"time"

	"bms/internal/models"
	"bms/internal/store"
)

// ErrBadTransition reports a status change outside the allowed path.
var ErrBadTransition = errors.New("invalid status transition")

// Orders is the order repository. Orders and their item lines live in
// separate files; items are joined onto orders by order ID at load.
type Orders struct {
	store     *store.Store[models.Order]
	itemStore *store.Store[models.OrderItem]
	orders    []models.Order
	ids       *Allocator
}

// OpenOrders loads both files and attaches item lines to their orders.
// An item row whose order ID matches no order is kept on file but not
// attached; the files are not a strict foreign-key relationship.
func OpenOrders(ordersPath, itemsPath string) (*Orders, error) {
	st := store.New(ordersPath, store.OrderCodec{})
	ist := store.New(itemsPath, store.OrderItemCodec{})
	orders, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	lines, err := ist.LoadAll()
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int][]models.OrderItem, len(orders))
	for _, ln := range lines {
		byOrder[ln.OrderID] = append(byOrder[ln.OrderID], ln)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	seed := maxID(orders, func(o models.Order) int { return o.ID }) + 1
	return &Orders{store: st, itemStore: ist, orders: orders, ids: NewAllocator(seed)}, nil
}

// All returns the collection in file order, items attached.
func (r *Orders) All() []models.Order {
	out := make([]models.Order, len(r.orders))
	copy(out, r.orders)
	return out
}

// FindByID returns the order with the given ID, items attached.
func (r *Orders) FindByID(id int) (models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("%w: order %d", ErrNotFound, id)
}

// Add assigns an ID, stamps it onto the item lines, and appends the
// order row and each item row. The two appends are not atomic; a crash
// between them is a documented consistency gap of the file format.
func (r *Orders) Add(o models.Order) (models.Order, error) {
	o.ID = r.ids.Next()
	if o.Status == 0 {
		o.Status = models.OrderPending
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if err := r.store.Append(o); err != nil {
		return models.Order{}, err
	}
	for _, it := range o.Items {
		if err := r.itemStore.Append(it); err != nil {
			return models.Order{}, err
		}
	}
	r.orders = append(r.orders, o)
	return o, nil
}

// SetStatus advances an order one step along the delivery path, or
// cancels it from any non-terminal state, and rewrites the orders
// file. Cancelling does not restock by itself; see the orders package.
func (r *Orders) SetStatus(id int, next models.OrderStatus) (models.Order, error) {
	if _, err := models.ParseOrderStatus(int(next)); err != nil {
		return models.Order{}, err
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return models.Order{}, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	cur := r.orders[idx].Status
	if !cur.CanTransition(next) {
		return models.Order{}, fmt.Errorf("%w: %s to %s", ErrBadTransition, cur, next)
	}
	r.orders[idx].Status = next
	if err := r.store.OverwriteAll(r.orders); err != nil {
		r.orders[idx].Status = cur
		return models.Order{}, err
	}
	return r.orders[idx], nil
}

// Delete removes an order and its item lines, rewriting both files.
func (r *Orders) Delete(id int) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	r.orders = append(r.orders[:idx], r.orders[idx+1:]...)
	if err := r.store.OverwriteAll(r.orders); err != nil {
		return err
	}
	return r.saveItems()
}

// saveItems rewrites the item file from every attached line.
func (r *Orders) saveItems() error {
	var lines []models.OrderItem
	for _, o := range r.orders {
		lines = append(lines, o.Items...)
	}
	return r.itemStore.OverwriteAll(lines)
}

func (r *Orders) indexOf(id int) int {
	for i, o := range r.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
