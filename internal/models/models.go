// Package models defines the persisted record types and their enums.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Role is a staff access level. Wire codes are 1-based to match the
// legacy data files.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleManager
	RoleStaff
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleStaff:
		return "Staff"
	}
	return "Unknown"
}

// ParseRole maps a wire code to a Role.
func ParseRole(code int) (Role, error) {
	if code < int(RoleAdmin) || code > int(RoleStaff) {
		return 0, fmt.Errorf("invalid role code %d", code)
	}
	return Role(code), nil
}

// SupplierStatus gates supplier logins: only active accounts may sign in.
type SupplierStatus int

const (
	SupplierActive SupplierStatus = iota + 1
	SupplierInactive
	SupplierPending
)

func (s SupplierStatus) String() string {
	switch s {
	case SupplierActive:
		return "Active"
	case SupplierInactive:
		return "Inactive"
	case SupplierPending:
		return "Pending"
	}
	return "Unknown"
}

// ParseSupplierStatus maps a wire code to a SupplierStatus.
func ParseSupplierStatus(code int) (SupplierStatus, error) {
	if code < int(SupplierActive) || code > int(SupplierPending) {
		return 0, fmt.Errorf("invalid supplier status code %d", code)
	}
	return SupplierStatus(code), nil
}

// OrderStatus follows the forward path Pending, Processing, Shipped,
// Delivered. Cancelled is reachable from any non-terminal state.
type OrderStatus int

const (
	OrderPending OrderStatus = iota + 1
	OrderProcessing
	OrderShipped
	OrderDelivered
	OrderCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderProcessing:
		return "Processing"
	case OrderShipped:
		return "Shipped"
	case OrderDelivered:
		return "Delivered"
	case OrderCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// ParseOrderStatus maps a wire code to an OrderStatus.
func ParseOrderStatus(code int) (OrderStatus, error) {
	if code < int(OrderPending) || code > int(OrderCancelled) {
		return 0, fmt.Errorf("invalid order status code %d", code)
	}
	return OrderStatus(code), nil
}

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether next is a legal move: one step forward
// along the delivery path, or Cancelled from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	return next == s+1
}

// Product is a stocked catalog item. SupplierID 0 means unowned/legacy.
type Product struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Quantity    int
	Category    string
	Description string
	SupplierID  int
}

// Supplier holds a vendor account. Password is a bcrypt hash.
type Supplier struct {
	ID            int
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Username      string
	Password      string
	Status        SupplierStatus
}

// Staff holds an operator account. Password is a bcrypt hash.
type Staff struct {
	ID       int
	Username string
	Password string
	Name     string
	Phone    string
	Email    string
	Role     Role
}

// OrderItem is a line on an order. Name and price are snapshots taken
// when the line was added; they do not track later product edits.
type OrderItem struct {
	OrderID     int
	ProductID   int
	ProductName string
	Price       decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// Order is a customer order. TotalAmount always equals the sum of the
// item subtotals. OrderDate is fixed at creation.
type Order struct {
	ID           int
	CustomerID   int
	CustomerName string
	Items        []OrderItem
	TotalAmount  decimal.Decimal
	OrderDate    time.Time
	Status       OrderStatus
}

// ItemTotal recomputes the sum of the item subtotals.
func (o *Order) ItemTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal)
	}
	return sum
}
