// Package access holds the fixed module-by-role permission table and
// the farm-visibility rule. Both are pure data lookups: unknown roles
// or modules resolve to no access, never to an error.
package access

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type Action string

const (
	ActionView Action = "view"
	ActionEdit Action = "edit"
)

type Permission struct {
	View bool
	Edit bool
}

// permissions mirrors the matrix the enterprise runs in production.
// Every (module, role) pair is present; Validate enforces that at
// startup so a missing entry is a deploy failure, not a silent deny.
var permissions = map[model.Module]map[model.Role]Permission{
	model.ModuleDashboard: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: false},
		model.RoleFarmSupervisor: {View: true, Edit: false},
		model.RoleAccountantHR:   {View: true, Edit: false},
		model.RoleWarehouseClerk: {View: true, Edit: false},
	},
	model.ModuleProduction: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: false},
		model.RoleFarmSupervisor: {View: true, Edit: true},
		model.RoleAccountantHR:   {View: false, Edit: false},
		model.RoleWarehouseClerk: {View: false, Edit: false},
	},
	model.ModulePayroll: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: false},
		model.RoleFarmSupervisor: {View: false, Edit: false},
		model.RoleAccountantHR:   {View: true, Edit: true},
		model.RoleWarehouseClerk: {View: false, Edit: false},
	},
	model.ModuleInventory: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: false},
		model.RoleFarmSupervisor: {View: true, Edit: true},
		model.RoleAccountantHR:   {View: false, Edit: false},
		model.RoleWarehouseClerk: {View: true, Edit: true},
	},
	model.ModuleReports: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: true},
		model.RoleFarmSupervisor: {View: true, Edit: false},
		model.RoleAccountantHR:   {View: true, Edit: true},
		model.RoleWarehouseClerk: {View: true, Edit: true},
	},
	model.ModuleAnalytics: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: true},
		model.RoleFarmSupervisor: {View: true, Edit: false},
		model.RoleAccountantHR:   {View: true, Edit: false},
		model.RoleWarehouseClerk: {View: false, Edit: false},
	},
	model.ModuleGeo: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: true, Edit: false},
		model.RoleFarmSupervisor: {View: true, Edit: false},
		model.RoleAccountantHR:   {View: false, Edit: false},
		model.RoleWarehouseClerk: {View: false, Edit: false},
	},
	model.ModuleConfiguration: {
		model.RoleAdministrator:  {View: true, Edit: true},
		model.RoleManager:        {View: false, Edit: false},
		model.RoleFarmSupervisor: {View: false, Edit: false},
		model.RoleAccountantHR:   {View: false, Edit: false},
		model.RoleWarehouseClerk: {View: false, Edit: false},
	},
}

// CanAccess answers the permission question for one role, module and
// action. Unknown combinations are false.
func CanAccess(role model.Role, module model.Module, action Action) bool {
	perRole, ok := permissions[module]
	if !ok {
		return false
	}
	perm, ok := perRole[role]
	if !ok {
		return false
	}
	switch action {
	case ActionView:
		return perm.View
	case ActionEdit:
		return perm.Edit
	default:
		return false
	}
}

// Visible reports whether a farm-tagged record may be shown to the
// principal. Records without a farm scope are visible to everyone who
// can see the module at all; administrators and managers see every
// farm; the accountant sees every farm for payroll data and the
// warehouse clerk for inventory data; a farm supervisor sees only the
// assigned farm.
func Visible(p model.Principal, module model.Module, recordFarm *uuid.UUID) bool {
	if recordFarm == nil {
		return true
	}
	switch p.Role {
	case model.RoleAdministrator, model.RoleManager:
		return true
	case model.RoleAccountantHR:
		return module == model.ModulePayroll
	case model.RoleWarehouseClerk:
		return module == model.ModuleInventory
	case model.RoleFarmSupervisor:
		return p.AssignedFarmID != nil && *p.AssignedFarmID == *recordFarm
	default:
		return false
	}
}

// RolesWithEdit returns the roles holding edit on the module, in the
// stable AllRoles order. Derived alerts use this as their audience.
func RolesWithEdit(module model.Module) []model.Role {
	var roles []model.Role
	for _, role := range model.AllRoles() {
		if CanAccess(role, module, ActionEdit) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Validate checks the table is total over all modules and roles and
// that edit never exceeds view. Called once from the composition root.
func Validate() error {
	for _, module := range model.AllModules() {
		perRole, ok := permissions[module]
		if !ok {
			return fmt.Errorf("permission table missing module %q", module)
		}
		for _, role := range model.AllRoles() {
			perm, ok := perRole[role]
			if !ok {
				return fmt.Errorf("permission table missing role %q for module %q", role, module)
			}
			if perm.Edit && !perm.View {
				return fmt.Errorf("module %q grants edit without view to role %q", module, role)
			}
		}
	}
	return nil
}
