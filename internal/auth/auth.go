// Package auth handles password hashing, staff and supplier logins, and
// role-based permission checks.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"bms/internal/models"
	"bms/internal/repo"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so failed logins cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned for suppliers whose status is not
	// Active, regardless of password correctness.
	ErrAccountInactive = errors.New("account is not active")

	// ErrPermissionDenied is returned when a role gate fails.
	ErrPermissionDenied = errors.New("permission denied")
)

// dummyHash is compared against when the username is unknown, so the
// lookup miss costs roughly the same as a password mismatch.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("-"), bcrypt.MinCost)

// HashPassword returns the bcrypt hash stored in place of the password.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LoginStaff authenticates a staff account.
func LoginStaff(staff *repo.Staff, username, password string) (models.Staff, error) {
	s, err := staff.FindByUsername(username)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.Staff{}, ErrInvalidCredentials
	}
	if !CheckPassword(s.Password, password) {
		return models.Staff{}, ErrInvalidCredentials
	}
	return s, nil
}

// LoginSupplier authenticates a supplier account. Only Active suppliers
// may sign in; a correct password does not override the status gate.
func LoginSupplier(suppliers *repo.Suppliers, username, password string) (models.Supplier, error) {
	s, err := suppliers.FindByUsername(username)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.Supplier{}, ErrInvalidCredentials
	}
	if !CheckPassword(s.Password, password) {
		return models.Supplier{}, ErrInvalidCredentials
	}
	if s.Status != models.SupplierActive {
		return models.Supplier{}, ErrAccountInactive
	}
	return s, nil
}
