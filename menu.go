package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bms/internal/audit"
	"bms/internal/auth"
	"bms/internal/config"
	"bms/internal/export"
	"bms/internal/models"
	"bms/internal/orders"
	"bms/internal/repo"
)

// app is the terminal shell. It owns all prompting and message
// formatting; every business rule lives in the internal packages.
type app struct {
	cfg       config.Config
	products  *repo.Products
	suppliers *repo.Suppliers
	staff     *repo.Staff
	orders    *repo.Orders
	orderSvc  *orders.Service
	trail     *audit.Logger
	in        io.Reader
	out       io.Writer

	scanner *bufio.Scanner
}

func (a *app) run() {
	a.scanner = bufio.NewScanner(a.in)
	for {
		fmt.Fprintln(a.out, "\n=== Business Management System ===")
		fmt.Fprintln(a.out, "1) Staff login")
		fmt.Fprintln(a.out, "2) Supplier login")
		fmt.Fprintln(a.out, "0) Exit")
		switch a.prompt("Choice") {
		case "1":
			a.staffLogin()
		case "2":
			a.supplierLogin()
		case "0":
			return
		}
	}
}

func (a *app) staffLogin() {
	username := a.prompt("Username")
	password := a.prompt("Password")
	user, err := auth.LoginStaff(a.staff, username, password)
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(user.Username, audit.ActionLogin, "staff", user.ID, "staff login")
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", user.Name, user.Role)
	a.staffSession(user)
}

func (a *app) supplierLogin() {
	username := a.prompt("Username")
	password := a.prompt("Password")
	sup, err := auth.LoginSupplier(a.suppliers, username, password)
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(sup.Username, audit.ActionLogin, "supplier", sup.ID, "supplier login")
	fmt.Fprintf(a.out, "Welcome, %s\n", sup.Name)
	a.supplierSession(sup)
}

func (a *app) staffSession(user models.Staff) {
	for {
		fmt.Fprintln(a.out, "\n--- Main Menu ---")
		fmt.Fprintln(a.out, "1) Products")
		fmt.Fprintln(a.out, "2) Suppliers")
		fmt.Fprintln(a.out, "3) Staff")
		fmt.Fprintln(a.out, "4) Orders")
		fmt.Fprintln(a.out, "5) Reports")
		fmt.Fprintln(a.out, "6) Audit trail")
		fmt.Fprintln(a.out, "0) Logout")
		switch a.prompt("Choice") {
		case "1":
			a.productMenu(user)
		case "2":
			a.supplierAdminMenu(user)
		case "3":
			a.staffMenu(user)
		case "4":
			a.orderMenu(user)
		case "5":
			a.reportMenu(user)
		case "6":
			a.auditMenu(user)
		case "0":
			return
		}
	}
}

func (a *app) productMenu(user models.Staff) {
	for {
		fmt.Fprintln(a.out, "\n--- Products ---")
		fmt.Fprintln(a.out, "1) List  2) Search  3) Add  4) Update  5) Delete  6) Add stock  7) Remove stock  0) Back")
		switch a.prompt("Choice") {
		case "1":
			for _, p := range a.products.All() {
				a.printProduct(p)
			}
		case "2":
			term := a.prompt("Search term")
			matches := a.products.SearchByName(term)
			if len(matches) == 0 {
				fmt.Fprintln(a.out, "No products found.")
			}
			for _, p := range matches {
				a.printProduct(p)
			}
		case "3":
			if a.denied(user.Role, auth.ModuleProducts, auth.ActionCreate) {
				continue
			}
			a.addProduct(user.Username, 0)
		case "4":
			if a.denied(user.Role, auth.ModuleProducts, auth.ActionEdit) {
				continue
			}
			a.updateProduct(user.Username, 0)
		case "5":
			if a.denied(user.Role, auth.ModuleProducts, auth.ActionDelete) {
				continue
			}
			id := a.promptInt("Product ID")
			if err := a.products.Delete(id); err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionDelete, "product", id, "deleted product")
			fmt.Fprintln(a.out, "Product deleted.")
		case "6":
			if a.denied(user.Role, auth.ModuleProducts, auth.ActionEdit) {
				continue
			}
			id := a.promptInt("Product ID")
			n := a.promptInt("Quantity to add")
			p, err := a.products.AddStock(id, n)
			if err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionUpdate, "product", id, fmt.Sprintf("stock +%d", n))
			fmt.Fprintf(a.out, "Stock is now %d.\n", p.Quantity)
		case "7":
			if a.denied(user.Role, auth.ModuleProducts, auth.ActionEdit) {
				continue
			}
			id := a.promptInt("Product ID")
			n := a.promptInt("Quantity to remove")
			p, err := a.products.RemoveStock(id, n)
			if err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionUpdate, "product", id, fmt.Sprintf("stock -%d", n))
			fmt.Fprintf(a.out, "Stock is now %d.\n", p.Quantity)
		case "0":
			return
		}
	}
}

func (a *app) addProduct(actor string, supplierID int) {
	name := a.prompt("Name")
	price, err := decimal.NewFromString(a.prompt("Price"))
	if err != nil {
		a.fail(fmt.Errorf("invalid price: %v", err))
		return
	}
	qty := a.promptInt("Quantity")
	category := a.prompt("Category")
	description := a.prompt("Description")
	if supplierID == 0 {
		supplierID = a.promptIntDefault("Supplier ID (0 = none)", 0)
	}
	p, err := a.products.Add(models.Product{
		Name: name, Price: price, Quantity: qty,
		Category: category, Description: description, SupplierID: supplierID,
	})
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionCreate, "product", p.ID, "created product "+p.Name)
	fmt.Fprintf(a.out, "Product created with ID %d.\n", p.ID)
}

// updateProduct prompts per field; blank keeps the current value. When
// ownerID is non-zero the product must belong to that supplier.
func (a *app) updateProduct(actor string, ownerID int) {
	id := a.promptInt("Product ID")
	p, err := a.products.FindByID(id)
	if err != nil {
		a.fail(err)
		return
	}
	if ownerID != 0 && p.SupplierID != ownerID {
		a.fail(auth.ErrPermissionDenied)
		return
	}
	var upd repo.ProductUpdate
	if v := a.prompt("Name [" + p.Name + "]"); v != "" {
		upd.Name = &v
	}
	if v := a.prompt("Price [" + p.Price.StringFixed(2) + "]"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			a.fail(fmt.Errorf("invalid price: %v", err))
			return
		}
		upd.Price = &price
	}
	if v := a.prompt(fmt.Sprintf("Quantity [%d]", p.Quantity)); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			a.fail(fmt.Errorf("invalid quantity: %v", err))
			return
		}
		upd.Quantity = &qty
	}
	if v := a.prompt("Category [" + p.Category + "]"); v != "" {
		upd.Category = &v
	}
	if v := a.prompt("Description [" + p.Description + "]"); v != "" {
		upd.Description = &v
	}
	p, err = a.products.Update(id, upd)
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionUpdate, "product", id, "updated product "+p.Name)
	fmt.Fprintln(a.out, "Product updated.")
}

func (a *app) supplierAdminMenu(user models.Staff) {
	for {
		fmt.Fprintln(a.out, "\n--- Suppliers ---")
		fmt.Fprintln(a.out, "1) List  2) Register  3) Update  4) Delete  0) Back")
		switch a.prompt("Choice") {
		case "1":
			for _, s := range a.suppliers.All() {
				fmt.Fprintf(a.out, "[%d] %s (%s) - %s, %s\n", s.ID, s.Name, s.Status, s.ContactPerson, s.Phone)
			}
		case "2":
			if a.denied(user.Role, auth.ModuleSuppliers, auth.ActionCreate) {
				continue
			}
			a.registerSupplier(user.Username)
		case "3":
			if a.denied(user.Role, auth.ModuleSuppliers, auth.ActionEdit) {
				continue
			}
			a.updateSupplier(user.Username)
		case "4":
			if a.denied(user.Role, auth.ModuleSuppliers, auth.ActionDelete) {
				continue
			}
			id := a.promptInt("Supplier ID")
			if err := a.suppliers.Delete(id); err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionDelete, "supplier", id, "deleted supplier")
			fmt.Fprintln(a.out, "Supplier deleted.")
		case "0":
			return
		}
	}
}

func (a *app) registerSupplier(actor string) {
	name := a.prompt("Supplier name")
	contact := a.prompt("Contact person")
	phone := a.prompt("Phone")
	email := a.prompt("Email")
	address := a.prompt("Address")
	username := a.prompt("Username")
	hash, err := auth.HashPassword(a.prompt("Password"), a.cfg.BcryptCost)
	if err != nil {
		a.fail(err)
		return
	}
	s, err := a.suppliers.Add(models.Supplier{
		Name: name, ContactPerson: contact, Phone: phone, Email: email,
		Address: address, Username: username, Password: hash,
		Status: models.SupplierActive,
	})
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionCreate, "supplier", s.ID, "registered supplier "+s.Name)
	fmt.Fprintf(a.out, "Supplier registered with ID %d.\n", s.ID)
}

func (a *app) updateSupplier(actor string) {
	id := a.promptInt("Supplier ID")
	s, err := a.suppliers.FindByID(id)
	if err != nil {
		a.fail(err)
		return
	}
	var upd repo.SupplierUpdate
	if v := a.prompt("Name [" + s.Name + "]"); v != "" {
		upd.Name = &v
	}
	if v := a.prompt("Contact [" + s.ContactPerson + "]"); v != "" {
		upd.ContactPerson = &v
	}
	if v := a.prompt("Phone [" + s.Phone + "]"); v != "" {
		upd.Phone = &v
	}
	if v := a.prompt("Email [" + s.Email + "]"); v != "" {
		upd.Email = &v
	}
	if v := a.prompt("Address [" + s.Address + "]"); v != "" {
		upd.Address = &v
	}
	if v := a.prompt("Status (1=Active 2=Inactive 3=Pending) [" + s.Status.String() + "]"); v != "" {
		code, err := strconv.Atoi(v)
		if err == nil {
			if status, perr := models.ParseSupplierStatus(code); perr == nil {
				upd.Status = &status
			} else {
				a.fail(perr)
				return
			}
		}
	}
	if _, err := a.suppliers.Update(id, upd); err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionUpdate, "supplier", id, "updated supplier")
	fmt.Fprintln(a.out, "Supplier updated.")
}

func (a *app) staffMenu(user models.Staff) {
	for {
		fmt.Fprintln(a.out, "\n--- Staff ---")
		fmt.Fprintln(a.out, "1) List  2) Register  3) Update  4) Delete  0) Back")
		switch a.prompt("Choice") {
		case "1":
			if a.denied(user.Role, auth.ModuleStaff, auth.ActionView) {
				continue
			}
			for _, s := range a.staff.All() {
				fmt.Fprintf(a.out, "[%d] %s (%s) - %s\n", s.ID, s.Name, s.Role, s.Username)
			}
		case "2":
			if a.denied(user.Role, auth.ModuleStaff, auth.ActionCreate) {
				continue
			}
			a.registerStaff(user.Username)
		case "3":
			if a.denied(user.Role, auth.ModuleStaff, auth.ActionEdit) {
				continue
			}
			a.updateStaff(user.Username)
		case "4":
			if a.denied(user.Role, auth.ModuleStaff, auth.ActionDelete) {
				continue
			}
			id := a.promptInt("Staff ID")
			if err := a.staff.Delete(id, user.ID); err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionDelete, "staff", id, "deleted staff account")
			fmt.Fprintln(a.out, "Staff deleted.")
		case "0":
			return
		}
	}
}

func (a *app) registerStaff(actor string) {
	name := a.prompt("Full name")
	username := a.prompt("Username")
	hash, err := auth.HashPassword(a.prompt("Password"), a.cfg.BcryptCost)
	if err != nil {
		a.fail(err)
		return
	}
	phone := a.prompt("Phone")
	email := a.prompt("Email")
	roleCode := a.promptIntDefault("Role (1=Admin 2=Manager 3=Staff)", 3)
	role, err := models.ParseRole(roleCode)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid role, defaulting to Staff.")
		role = models.RoleStaff
	}
	s, err := a.staff.Register(models.Staff{
		Username: username, Password: hash, Name: name,
		Phone: phone, Email: email, Role: role,
	})
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionCreate, "staff", s.ID, "registered staff "+s.Username)
	fmt.Fprintf(a.out, "Staff registered with ID %d.\n", s.ID)
}

func (a *app) updateStaff(actor string) {
	id := a.promptInt("Staff ID")
	s, err := a.staff.FindByID(id)
	if err != nil {
		a.fail(err)
		return
	}
	var upd repo.StaffUpdate
	if v := a.prompt("Name [" + s.Name + "]"); v != "" {
		upd.Name = &v
	}
	if v := a.prompt("Phone [" + s.Phone + "]"); v != "" {
		upd.Phone = &v
	}
	if v := a.prompt("Email [" + s.Email + "]"); v != "" {
		upd.Email = &v
	}
	if v := a.prompt("New password (blank keeps current)"); v != "" {
		hash, err := auth.HashPassword(v, a.cfg.BcryptCost)
		if err != nil {
			a.fail(err)
			return
		}
		upd.Password = &hash
	}
	if v := a.prompt("Role (1=Admin 2=Manager 3=Staff) [" + s.Role.String() + "]"); v != "" {
		code, err := strconv.Atoi(v)
		if err == nil {
			if role, perr := models.ParseRole(code); perr == nil {
				upd.Role = &role
			} else {
				a.fail(perr)
				return
			}
		}
	}
	if _, err := a.staff.Update(id, upd); err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(actor, audit.ActionUpdate, "staff", id, "updated staff account")
	fmt.Fprintln(a.out, "Staff updated.")
}

func (a *app) orderMenu(user models.Staff) {
	for {
		fmt.Fprintln(a.out, "\n--- Orders ---")
		fmt.Fprintln(a.out, "1) List  2) View  3) Create  4) Update status  0) Back")
		switch a.prompt("Choice") {
		case "1":
			for _, o := range a.orders.All() {
				fmt.Fprintf(a.out, "[%d] %s - $%s (%s, %d lines)\n",
					o.ID, o.CustomerName, o.TotalAmount.StringFixed(2), o.Status, len(o.Items))
			}
		case "2":
			id := a.promptInt("Order ID")
			o, err := a.orders.FindByID(id)
			if err != nil {
				a.fail(err)
				continue
			}
			a.printOrder(o)
		case "3":
			if a.denied(user.Role, auth.ModuleOrders, auth.ActionCreate) {
				continue
			}
			a.createOrder(user.Username)
		case "4":
			if a.denied(user.Role, auth.ModuleOrders, auth.ActionEdit) {
				continue
			}
			id := a.promptInt("Order ID")
			code := a.promptInt("New status (1=Pending 2=Processing 3=Shipped 4=Delivered 5=Cancelled)")
			o, err := a.orderSvc.UpdateStatus(id, models.OrderStatus(code))
			if err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(user.Username, audit.ActionUpdate, "order", id, "status set to "+o.Status.String())
			fmt.Fprintf(a.out, "Order %d is now %s.\n", o.ID, o.Status)
		case "0":
			return
		}
	}
}

func (a *app) createOrder(actor string) {
	customerID := a.promptInt("Customer ID")
	customerName := a.prompt("Customer name")
	b := orders.NewBuilder(a.products, customerID, customerName)
	for {
		fmt.Fprintf(a.out, "Running total: $%s\n", b.Total())
		fmt.Fprintln(a.out, "1) Add item  2) Remove item  3) Save order  0) Discard")
		switch a.prompt("Choice") {
		case "1":
			productID := a.promptInt("Product ID")
			qty := a.promptInt("Quantity")
			item, err := b.AddItem(productID, qty)
			if err != nil {
				a.fail(err)
				continue
			}
			fmt.Fprintf(a.out, "Added %d x %s ($%s).\n", item.Quantity, item.ProductName, item.Subtotal.StringFixed(2))
		case "2":
			productID := a.promptInt("Product ID")
			if err := b.RemoveItem(productID); err != nil {
				a.fail(err)
			}
		case "3":
			o, err := b.Finalize(a.orders)
			if err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(actor, audit.ActionCreate, "order", o.ID,
				fmt.Sprintf("order for %s, total $%s", o.CustomerName, o.TotalAmount.StringFixed(2)))
			fmt.Fprintf(a.out, "Order %d saved.\n", o.ID)
			return
		case "0":
			b.Abandon()
			fmt.Fprintln(a.out, "Order discarded.")
			return
		}
	}
}

func (a *app) reportMenu(user models.Staff) {
	if a.denied(user.Role, auth.ModuleReports, auth.ActionView) {
		return
	}
	fmt.Fprintln(a.out, "\n--- Reports ---")
	fmt.Fprintln(a.out, "1) Products  2) Suppliers  3) Orders  0) Back")
	choice := a.prompt("Choice")
	if choice == "0" || choice == "" {
		return
	}
	format := export.FormatCSV
	if strings.EqualFold(a.prompt("Format (csv/xlsx)"), "xlsx") {
		format = export.FormatXLSX
	}
	path := a.prompt("Output file")
	f, err := os.Create(path)
	if err != nil {
		a.fail(err)
		return
	}
	defer f.Close()

	var entity string
	switch choice {
	case "1":
		entity = "products"
		err = export.Products(f, format, a.products.All())
	case "2":
		entity = "suppliers"
		err = export.Suppliers(f, format, a.suppliers.All())
	case "3":
		entity = "orders"
		err = export.Orders(f, format, a.orders.All())
	default:
		return
	}
	if err != nil {
		a.fail(err)
		return
	}
	a.trail.Log(user.Username, audit.ActionExport, entity, 0, "exported "+entity+" to "+path)
	fmt.Fprintln(a.out, "Report written to "+path+".")
}

func (a *app) auditMenu(user models.Staff) {
	if a.denied(user.Role, auth.ModuleAudit, auth.ActionView) {
		return
	}
	entries, err := a.trail.Recent(20)
	if err != nil {
		a.fail(err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %-8s %-10s #%d  %s (%s)\n",
			e.CreatedAt, e.Action, e.Entity, e.RecordID, e.Details, e.Username)
	}
}

// supplierSession is the supplier self-service menu: suppliers manage
// only their own products.
func (a *app) supplierSession(sup models.Supplier) {
	for {
		fmt.Fprintln(a.out, "\n--- Supplier Menu ---")
		fmt.Fprintln(a.out, "1) My products  2) Add product  3) Update product  4) Delete product  0) Logout")
		switch a.prompt("Choice") {
		case "1":
			mine := a.products.BySupplier(sup.ID)
			if len(mine) == 0 {
				fmt.Fprintln(a.out, "No products yet.")
			}
			for _, p := range mine {
				a.printProduct(p)
			}
		case "2":
			a.addProduct(sup.Username, sup.ID)
		case "3":
			a.updateProduct(sup.Username, sup.ID)
		case "4":
			id := a.promptInt("Product ID")
			p, err := a.products.FindByID(id)
			if err != nil {
				a.fail(err)
				continue
			}
			if p.SupplierID != sup.ID {
				a.fail(auth.ErrPermissionDenied)
				continue
			}
			if err := a.products.Delete(id); err != nil {
				a.fail(err)
				continue
			}
			a.trail.Log(sup.Username, audit.ActionDelete, "product", id, "supplier deleted product")
			fmt.Fprintln(a.out, "Product deleted.")
		case "0":
			return
		}
	}
}

func (a *app) printProduct(p models.Product) {
	fmt.Fprintf(a.out, "[%d] %s - $%s, %d in stock (%s)\n",
		p.ID, p.Name, p.Price.StringFixed(2), p.Quantity, p.Category)
}

func (a *app) printOrder(o models.Order) {
	fmt.Fprintf(a.out, "Order %d for %s (customer %d) - %s, placed %s\n",
		o.ID, o.CustomerName, o.CustomerID, o.Status, o.OrderDate.Format("2006-01-02 15:04:05"))
	for _, it := range o.Items {
		fmt.Fprintf(a.out, "  %d x %s @ $%s = $%s\n",
			it.Quantity, it.ProductName, it.Price.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(a.out, "  Total: $%s\n", o.TotalAmount.StringFixed(2))
}

func (a *app) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

func (a *app) promptInt(label string) int {
	for {
		v := a.prompt(label)
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		fmt.Fprintln(a.out, "Please enter a number.")
	}
}

func (a *app) promptIntDefault(label string, def int) int {
	v := a.prompt(label)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// denied prints a message and reports true when the role gate fails.
func (a *app) denied(role models.Role, module, action string) bool {
	if err := auth.Require(role, module, action); err != nil {
		a.fail(err)
		return true
	}
	return false
}

// fail translates core errors into user-facing messages.
func (a *app) fail(err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid username or password.")
	case errors.Is(err, auth.ErrAccountInactive):
		fmt.Fprintln(a.out, "Your account is not active. Please contact the administrator.")
	case errors.Is(err, auth.ErrPermissionDenied):
		fmt.Fprintln(a.out, "You do not have permission for that.")
	case errors.Is(err, repo.ErrInsufficientStock):
		fmt.Fprintln(a.out, "Not enough stock for that quantity.")
	case errors.Is(err, repo.ErrInvalidQuantity):
		fmt.Fprintln(a.out, "Quantity must be a positive number within stock limits.")
	case errors.Is(err, repo.ErrDuplicateUsername):
		fmt.Fprintln(a.out, "Username already exists.")
	case errors.Is(err, repo.ErrSelfDelete):
		fmt.Fprintln(a.out, "You cannot delete your own account.")
	case errors.Is(err, repo.ErrNotFound):
		fmt.Fprintln(a.out, "Record not found.")
	case errors.Is(err, orders.ErrEmptyOrder):
		fmt.Fprintln(a.out, "Order has no items; nothing saved.")
	case errors.Is(err, repo.ErrBadTransition):
		fmt.Fprintln(a.out, "That status change is not allowed.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
