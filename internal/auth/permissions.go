package auth

import (
	"fmt"

	"bms/internal/models"
)

// Permission modules correspond to the major feature areas.
const (
	ModuleProducts  = "products"
	ModuleSuppliers = "suppliers"
	ModuleStaff     = "staff"
	ModuleOrders    = "orders"
	ModuleReports   = "reports"
	ModuleAudit     = "audit"
)

// Permission actions.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// rolePerms maps a role to its granted module actions. Admin is
// handled implicitly (all modules, all actions). Staff account
// management and supplier creation are admin-only.
var rolePerms = map[models.Role]map[string]map[string]bool{
	models.RoleManager: {
		ModuleProducts:  {ActionView: true, ActionCreate: true, ActionEdit: true, ActionDelete: true},
		ModuleSuppliers: {ActionView: true, ActionEdit: true},
		ModuleStaff:     {ActionView: true},
		ModuleOrders:    {ActionView: true, ActionCreate: true, ActionEdit: true},
		ModuleReports:   {ActionView: true},
		ModuleAudit:     {ActionView: true},
	},
	models.RoleStaff: {
		ModuleProducts: {ActionView: true},
		ModuleOrders:   {ActionView: true, ActionCreate: true, ActionEdit: true},
		ModuleReports:  {ActionView: true},
	},
}

// Allowed reports whether the role may perform action on module.
func Allowed(role models.Role, module, action string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return rolePerms[role][module][action]
}

// Require returns ErrPermissionDenied unless the role may perform
// action on module.
func Require(role models.Role, module, action string) error {
	if !Allowed(role, module, action) {
		return fmt.Errorf("%w: %s may not %s %s", ErrPermissionDenied, role, action, module)
	}
	return nil
}
