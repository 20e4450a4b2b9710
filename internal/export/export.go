// Package export renders entity listings as CSV or XLSX reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"bms/internal/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func productRows(products []models.Product) ([]string, [][]string) {
	headers := []string{"ID", "Name", "Price", "Quantity", "Category", "Description", "Supplier ID"}
	var data [][]string
	for _, p := range products {
		data = append(data, []string{
			strconv.Itoa(p.ID), p.Name, p.Price.StringFixed(2), strconv.Itoa(p.Quantity),
			p.Category, p.Description, strconv.Itoa(p.SupplierID),
		})
	}
	return headers, data
}

func supplierRows(suppliers []models.Supplier) ([]string, [][]string) {
	headers := []string{"ID", "Name", "Contact", "Phone", "Email", "Address", "Username", "Status"}
	var data [][]string
	for _, s := range suppliers {
		// Password hashes deliberately excluded from reports.
		data = append(data, []string{
			strconv.Itoa(s.ID), s.Name, s.ContactPerson, s.Phone, s.Email,
			s.Address, s.Username, s.Status.String(),
		})
	}
	return headers, data
}

func orderRows(orders []models.Order) ([]string, [][]string) {
	headers := []string{"ID", "Customer ID", "Customer", "Total", "Date", "Status", "Lines"}
	var data [][]string
	for _, o := range orders {
		data = append(data, []string{
			strconv.Itoa(o.ID), strconv.Itoa(o.CustomerID), o.CustomerName,
			o.TotalAmount.StringFixed(2), o.OrderDate.Format("2006-01-02 15:04:05"),
			o.Status.String(), strconv.Itoa(len(o.Items)),
		})
	}
	return headers, data
}

// Products writes a product report in the given format.
func Products(w io.Writer, format Format, products []models.Product) error {
	headers, data := productRows(products)
	return write(w, format, "Products", headers, data)
}

// Suppliers writes a supplier report in the given format.
func Suppliers(w io.Writer, format Format, suppliers []models.Supplier) error {
	headers, data := supplierRows(suppliers)
	return write(w, format, "Suppliers", headers, data)
}

// Orders writes an order report in the given format.
func Orders(w io.Writer, format Format, orders []models.Order) error {
	headers, data := orderRows(orders)
	return write(w, format, "Orders", headers, data)
}

func write(w io.Writer, format Format, sheet string, headers []string, data [][]string) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, headers, data)
	case FormatXLSX:
		return writeXLSX(w, sheet, headers, data)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func writeCSV(w io.Writer, headers []string, data [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range data {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, sheet string, headers []string, data [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheet, col, col, 15)
	}
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	return f.Write(w)
}
