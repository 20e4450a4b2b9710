package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bms/internal/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), Quantity: 10, Category: "Tools", Description: "A widget", SupplierID: 2},
		{ID: 2, Name: "Bolt, hex", Price: decimal.RequireFromString("0.25"), Quantity: 500, Category: "Hardware"},
	}
}

func TestProductsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Products(&buf, FormatCSV, sampleProducts()); err != nil {
		t.Fatalf("Products: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Name" {
		t.Errorf("Bad header: %v", rows[0])
	}
	if rows[1][2] != "9.99" {
		t.Errorf("Price not fixed to 2 places: %q", rows[1][2])
	}
	if rows[2][1] != "Bolt, hex" {
		t.Errorf("Comma field mangled: %q", rows[2][1])
	}
}

func TestProductsXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Products(&buf, FormatXLSX, sampleProducts()); err != nil {
		t.Fatalf("Products: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Products", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Widget" {
		t.Errorf("Expected Widget in B2, got %q", got)
	}
}

func TestSuppliersCSV_ExcludesPasswordHash(t *testing.T) {
	var buf bytes.Buffer
	suppliers := []models.Supplier{{
		ID: 1, Name: "ABC", Username: "abc", Password: "$2a$10$secret-hash",
		Status: models.SupplierActive,
	}}
	if err := Suppliers(&buf, FormatCSV, suppliers); err != nil {
		t.Fatalf("Suppliers: %v", err)
	}
	if strings.Contains(buf.String(), "secret-hash") {
		t.Error("Report leaked a password hash")
	}
	if !strings.Contains(buf.String(), "Active") {
		t.Error("Status label missing from report")
	}
}

func TestOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	orders := []models.Order{{
		ID: 7, CustomerID: 5, CustomerName: "Alice",
		TotalAmount: decimal.RequireFromString("29.97"),
		OrderDate:   time.Unix(1700000000, 0),
		Status:      models.OrderPending,
		Items:       []models.OrderItem{{ProductID: 1, Quantity: 3}},
	}}
	if err := Orders(&buf, FormatCSV, orders); err != nil {
		t.Fatalf("Orders: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Parse output: %v", err)
	}
	if rows[1][3] != "29.97" || rows[1][5] != "Pending" || rows[1][6] != "1" {
		t.Errorf("Bad order row: %v", rows[1])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Products(&buf, Format("pdf"), nil); err == nil {
		t.Fatal("Expected error for unsupported format")
	}
}
