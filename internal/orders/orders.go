// Package orders assembles customer orders against live product stock
// and applies status changes, including the configurable restock on
// cancellation.
package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bms/internal/models"
	"bms/internal/repo"
)

// ErrEmptyOrder reports an attempt to finalize an order with no items.
var ErrEmptyOrder = errors.New("order has no items")

// Builder accumulates items for one order. Each accepted item snapshots
// the product's name and price and reserves its quantity from live
// stock; the reservation is persisted only on Finalize.
type Builder struct {
	products  *repo.Products
	order     models.Order
	finalized bool
}

// NewBuilder starts an empty pending order for the given customer.
func NewBuilder(products *repo.Products, customerID int, customerName string) *Builder {
	return &Builder{
		products: products,
		order: models.Order{
			CustomerID:   customerID,
			CustomerName: customerName,
			OrderDate:    time.Now(),
			Status:       models.OrderPending,
		},
	}
}

// AddItem resolves the product, validates the quantity against stock,
// and appends a snapshot line. On any failure the order and the stock
// are left untouched.
func (b *Builder) AddItem(productID, qty int) (models.OrderItem, error) {
	p, err := b.products.Reserve(productID, qty)
	if err != nil {
		return models.OrderItem{}, err
	}
	item := models.OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    qty,
		Subtotal:    p.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
	b.order.Items = append(b.order.Items, item)
	b.order.TotalAmount = b.order.TotalAmount.Add(item.Subtotal)
	return item, nil
}

// RemoveItem drops the first line for the product, subtracts its
// subtotal, and returns the reserved quantity to live stock.
func (b *Builder) RemoveItem(productID int) error {
	for i, it := range b.order.Items {
		if it.ProductID == productID {
			b.order.Items = append(b.order.Items[:i], b.order.Items[i+1:]...)
			b.order.TotalAmount = b.order.TotalAmount.Sub(it.Subtotal)
			return b.products.Release(productID, it.Quantity)
		}
	}
	return fmt.Errorf("%w: product %d not on order", repo.ErrNotFound, productID)
}

// Items returns the lines added so far, in entry order.
func (b *Builder) Items() []models.OrderItem {
	out := make([]models.OrderItem, len(b.order.Items))
	copy(out, b.order.Items)
	return out
}

// Total returns the running order total.
func (b *Builder) Total() string { return b.order.TotalAmount.StringFixed(2) }

// Order returns the order as built so far.
func (b *Builder) Order() models.Order { return b.order }

// Finalize persists the order, its item lines, and the decremented
// product stock. An order with no items is rejected and nothing is
// written. The three writes are not atomic (documented gap).
func (b *Builder) Finalize(ordersRepo *repo.Orders) (models.Order, error) {
	if b.finalized {
		return models.Order{}, errors.New("order already finalized")
	}
	if len(b.order.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	saved, err := ordersRepo.Add(b.order)
	if err != nil {
		return models.Order{}, err
	}
	if err := b.products.Save(); err != nil {
		return models.Order{}, err
	}
	b.finalized = true
	b.order = saved
	return saved, nil
}

// Abandon returns every reserved quantity to live stock and discards
// the unfinalized order.
func (b *Builder) Abandon() {
	if b.finalized {
		return
	}
	for _, it := range b.order.Items {
		b.products.Release(it.ProductID, it.Quantity)
	}
	b.order.Items = nil
	b.order.TotalAmount = decimal.Zero
}

// Service applies order status changes with the configured cancellation
// behavior.
type Service struct {
	Orders          *repo.Orders
	Products        *repo.Products
	RestockOnCancel bool
}

// UpdateStatus moves an order to next. When cancellation restock is
// enabled, cancelling returns each consumed quantity to stock and
// persists the product snapshot.
func (s *Service) UpdateStatus(id int, next models.OrderStatus) (models.Order, error) {
	o, err := s.Orders.SetStatus(id, next)
	if err != nil {
		return models.Order{}, err
	}
	if next == models.OrderCancelled && s.RestockOnCancel {
		for _, it := range o.Items {
			if err := s.Products.Release(it.ProductID, it.Quantity); err != nil {
				// Product deleted since the order was placed; nothing to restock.
				continue
			}
		}
		if err := s.Products.Save(); err != nil {
			return models.Order{}, err
		}
	}
	return o, nil
}
