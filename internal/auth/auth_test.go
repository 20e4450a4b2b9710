package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bms/internal/models"
	"bms/internal/repo"
)

func openRepos(t *testing.T) (*repo.Staff, *repo.Suppliers) {
	t.Helper()
	dir := t.TempDir()
	staff, err := repo.OpenStaff(filepath.Join(dir, "staff.txt"))
	if err != nil {
		t.Fatalf("OpenStaff: %v", err)
	}
	suppliers, err := repo.OpenSuppliers(filepath.Join(dir, "suppliers.txt"))
	if err != nil {
		t.Fatalf("OpenSuppliers: %v", err)
	}
	return staff, suppliers
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash := mustHash(t, "secret")
	if hash == "secret" {
		t.Fatal("Password stored as plaintext")
	}
	if !CheckPassword(hash, "secret") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Wrong password accepted")
	}
}

func TestLoginStaff(t *testing.T) {
	staff, _ := openRepos(t)
	staff.Register(models.Staff{Username: "bob", Password: mustHash(t, "pw"), Name: "Bob"})

	got, err := LoginStaff(staff, "bob", "pw")
	if err != nil {
		t.Fatalf("LoginStaff: %v", err)
	}
	if got.Username != "bob" {
		t.Errorf("Wrong account: %+v", got)
	}

	// Unknown user and wrong password look identical to the caller.
	if _, err := LoginStaff(staff, "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := LoginStaff(staff, "bob", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestLoginSupplier_StatusGate(t *testing.T) {
	_, suppliers := openRepos(t)
	inactive := models.SupplierInactive
	s, _ := suppliers.Add(models.Supplier{Name: "A", Username: "abc", Password: mustHash(t, "pw")})
	suppliers.Update(s.ID, repo.SupplierUpdate{Status: &inactive})

	// Correct password does not override the status gate.
	if _, err := LoginSupplier(suppliers, "abc", "pw"); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("Expected ErrAccountInactive, got %v", err)
	}

	active := models.SupplierActive
	suppliers.Update(s.ID, repo.SupplierUpdate{Status: &active})
	if _, err := LoginSupplier(suppliers, "abc", "pw"); err != nil {
		t.Fatalf("Active supplier login: %v", err)
	}
	if _, err := LoginSupplier(suppliers, "abc", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPermissions(t *testing.T) {
	cases := []struct {
		role    models.Role
		module  string
		action  string
		allowed bool
	}{
		{models.RoleAdmin, ModuleStaff, ActionDelete, true},
		{models.RoleAdmin, ModuleSuppliers, ActionCreate, true},
		{models.RoleManager, ModuleProducts, ActionCreate, true},
		{models.RoleManager, ModuleStaff, ActionCreate, false},
		{models.RoleManager, ModuleSuppliers, ActionCreate, false},
		{models.RoleStaff, ModuleOrders, ActionCreate, true},
		{models.RoleStaff, ModuleProducts, ActionCreate, false},
		{models.RoleStaff, ModuleStaff, ActionView, false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.role, tc.module, tc.action); got != tc.allowed {
			t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tc.role, tc.module, tc.action, got, tc.allowed)
		}
	}
	if err := Require(models.RoleStaff, ModuleStaff, ActionDelete); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}
}

func TestEnsureDefaults(t *testing.T) {
	staff, suppliers := openRepos(t)
	if err := EnsureDefaults(staff, suppliers, bcrypt.MinCost); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	admin, err := LoginStaff(staff, DefaultAdminUsername, "admin123")
	if err != nil {
		t.Fatalf("Default admin login: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("Default admin role = %s", admin.Role)
	}
	if _, err := LoginSupplier(suppliers, DefaultSupplierUsername, "supplier123"); err != nil {
		t.Fatalf("Default supplier login: %v", err)
	}

	// Idempotent: a second run must not duplicate accounts.
	if err := EnsureDefaults(staff, suppliers, bcrypt.MinCost); err != nil {
		t.Fatalf("Second EnsureDefaults: %v", err)
	}
	if staff.Count() != 1 || suppliers.Count() != 1 {
		t.Errorf("Defaults duplicated: %d staff, %d suppliers", staff.Count(), suppliers.Count())
	}
}
