package model

import "github.com/google/uuid"

// Principal is the authenticated caller every service operation is
// evaluated against.
type Principal struct {
	UserID         uuid.UUID
	Role           Role
	AssignedFarmID *uuid.UUID
}

func (p Principal) IsAdministrator() bool  { return p.Role == RoleAdministrator }
func (p Principal) IsManager() bool        { return p.Role == RoleManager }
func (p Principal) IsFarmSupervisor() bool { return p.Role == RoleFarmSupervisor }
func (p Principal) IsAccountantHR() bool   { return p.Role == RoleAccountantHR }
func (p Principal) IsWarehouseClerk() bool { return p.Role == RoleWarehouseClerk }
