package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"bms/internal/models"
)

// Field layouts are positional and fixed. Enum fields carry the legacy
// 1-based numeric codes.

// ProductCodec maps id,name,price,quantity,category,description[,supplierID].
// Six-field rows predate supplier ownership and decode with SupplierID 0.
type ProductCodec struct{}

func (ProductCodec) Encode(p models.Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Price.String(),
		strconv.Itoa(p.Quantity),
		p.Category,
		p.Description,
		strconv.Itoa(p.SupplierID),
	}
}

func (ProductCodec) Decode(row []string) (models.Product, error) {
	var p models.Product
	if len(row) != 6 && len(row) != 7 {
		return p, fmt.Errorf("expected 6 or 7 fields, got %d", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return p, fmt.Errorf("product id: %v", err)
	}
	price, err := decimal.NewFromString(row[2])
	if err != nil {
		return p, fmt.Errorf("product price: %v", err)
	}
	qty, err := strconv.Atoi(row[3])
	if err != nil {
		return p, fmt.Errorf("product quantity: %v", err)
	}
	supplierID := 0
	if len(row) == 7 {
		supplierID, err = strconv.Atoi(row[6])
		if err != nil {
			return p, fmt.Errorf("product supplier id: %v", err)
		}
	}
	p = models.Product{
		ID:          id,
		Name:        row[1],
		Price:       price,
		Quantity:    qty,
		Category:    row[4],
		Description: row[5],
		SupplierID:  supplierID,
	}
	return p, nil
}

// SupplierCodec maps
// id,name,contactPerson,phone,email,address,username,password,status.
type SupplierCodec struct{}

func (SupplierCodec) Encode(s models.Supplier) []string {
	return []string{
		strconv.Itoa(s.ID),
		s.Name,
		s.ContactPerson,
		s.Phone,
		s.Email,
		s.Address,
		s.Username,
		s.Password,
		strconv.Itoa(int(s.Status)),
	}
}

func (SupplierCodec) Decode(row []string) (models.Supplier, error) {
	var s models.Supplier
	if len(row) != 9 {
		return s, fmt.Errorf("expected 9 fields, got %d", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return s, fmt.Errorf("supplier id: %v", err)
	}
	code, err := strconv.Atoi(row[8])
	if err != nil {
		return s, fmt.Errorf("supplier status: %v", err)
	}
	status, err := models.ParseSupplierStatus(code)
	if err != nil {
		return s, err
	}
	s = models.Supplier{
		ID:            id,
		Name:          row[1],
		ContactPerson: row[2],
		Phone:         row[3],
		Email:         row[4],
		Address:       row[5],
		Username:      row[6],
		Password:      row[7],
		Status:        status,
	}
	return s, nil
}

// StaffCodec maps id,username,password,name,phone,email,role.
type StaffCodec struct{}

func (StaffCodec) Encode(s models.Staff) []string {
	return []string{
		strconv.Itoa(s.ID),
		s.Username,
		s.Password,
		s.Name,
		s.Phone,
		s.Email,
		strconv.Itoa(int(s.Role)),
	}
}

func (StaffCodec) Decode(row []string) (models.Staff, error) {
	var s models.Staff
	if len(row) != 7 {
		return s, fmt.Errorf("expected 7 fields, got %d", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return s, fmt.Errorf("staff id: %v", err)
	}
	code, err := strconv.Atoi(row[6])
	if err != nil {
		return s, fmt.Errorf("staff role: %v", err)
	}
	role, err := models.ParseRole(code)
	if err != nil {
		return s, err
	}
	s = models.Staff{
		ID:       id,
		Username: row[1],
		Password: row[2],
		Name:     row[3],
		Phone:    row[4],
		Email:    row[5],
		Role:     role,
	}
	return s, nil
}

// OrderCodec maps id,customerID,customerName,totalAmount,orderDateEpoch,status.
// Items live in their own file; see OrderItemCodec.
type OrderCodec struct{}

func (OrderCodec) Encode(o models.Order) []string {
	return []string{
		strconv.Itoa(o.ID),
		strconv.Itoa(o.CustomerID),
		o.CustomerName,
		o.TotalAmount.String(),
		strconv.FormatInt(o.OrderDate.Unix(), 10),
		strconv.Itoa(int(o.Status)),
	}
}

func (OrderCodec) Decode(row []string) (models.Order, error) {
	var o models.Order
	if len(row) != 6 {
		return o, fmt.Errorf("expected 6 fields, got %d", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return o, fmt.Errorf("order id: %v", err)
	}
	custID, err := strconv.Atoi(row[1])
	if err != nil {
		return o, fmt.Errorf("order customer id: %v", err)
	}
	total, err := decimal.NewFromString(row[3])
	if err != nil {
		return o, fmt.Errorf("order total: %v", err)
	}
	epoch, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return o, fmt.Errorf("order date: %v", err)
	}
	code, err := strconv.Atoi(row[5])
	if err != nil {
		return o, fmt.Errorf("order status: %v", err)
	}
	status, err := models.ParseOrderStatus(code)
	if err != nil {
		return o, err
	}
	o = models.Order{
		ID:           id,
		CustomerID:   custID,
		CustomerName: row[2],
		TotalAmount:  total,
		OrderDate:    time.Unix(epoch, 0),
		Status:       status,
	}
	return o, nil
}

// OrderItemCodec maps orderID,productID,productName,price,quantity,subtotal.
type OrderItemCodec struct{}

func (OrderItemCodec) Encode(it models.OrderItem) []string {
	return []string{
		strconv.Itoa(it.OrderID),
		strconv.Itoa(it.ProductID),
		it.ProductName,
		it.Price.String(),
		strconv.Itoa(it.Quantity),
		it.Subtotal.String(),
	}
}

func (OrderItemCodec) Decode(row []string) (models.OrderItem, error) {
	var it models.OrderItem
	if len(row) != 6 {
		return it, fmt.Errorf("expected 6 fields, got %d", len(row))
	}
	orderID, err := strconv.Atoi(row[0])
	if err != nil {
		return it, fmt.Errorf("item order id: %v", err)
	}
	productID, err := strconv.Atoi(row[1])
	if err != nil {
		return it, fmt.Errorf("item product id: %v", err)
	}
	price, err := decimal.NewFromString(row[3])
	if err != nil {
		return it, fmt.Errorf("item price: %v", err)
	}
	qty, err := strconv.Atoi(row[4])
	if err != nil {
		return it, fmt.Errorf("item quantity: %v", err)
	}
	subtotal, err := decimal.NewFromString(row[5])
	if err != nil {
		return it, fmt.Errorf("item subtotal: %v", err)
	}
	it = models.OrderItem{
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: row[2],
		Price:       price,
		Quantity:    qty,
		Subtotal:    subtotal,
	}
	return it, nil
}
