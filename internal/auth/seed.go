package auth

import (
	"log"

	"bms/internal/models"
	"bms/internal/repo"
)

// Default credentials created on first run. Operators are expected to
// change them immediately.
const (
	DefaultAdminUsername    = "admin"
	defaultAdminPassword    = "admin123"
	DefaultSupplierUsername = "supplier"
	defaultSupplierPassword = "supplier123"
)

// EnsureDefaults seeds a default admin account when no staff exist and
// a default supplier account when no suppliers exist.
func EnsureDefaults(staff *repo.Staff, suppliers *repo.Suppliers, bcryptCost int) error {
	if staff.Count() == 0 {
		hash, err := HashPassword(defaultAdminPassword, bcryptCost)
		if err != nil {
			return err
		}
		_, err = staff.Register(models.Staff{
			Username: DefaultAdminUsername,
			Password: hash,
			Name:     "Administrator",
			Phone:    "N/A",
			Email:    "admin@bms.com",
			Role:     models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		log.Println("created default admin account")
	}
	if suppliers.Count() == 0 {
		hash, err := HashPassword(defaultSupplierPassword, bcryptCost)
		if err != nil {
			return err
		}
		_, err = suppliers.Add(models.Supplier{
			Name:          "ABC Supplies",
			ContactPerson: "John Doe",
			Phone:         "555-1234",
			Email:         "john@abcsupplies.com",
			Address:       "123 Main St",
			Username:      DefaultSupplierUsername,
			Password:      hash,
			Status:        models.SupplierActive,
		})
		if err != nil {
			return err
		}
		log.Println("created default supplier account")
	}
	return nil
}
