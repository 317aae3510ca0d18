package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdministrator  Role = "administrador"
	RoleManager        Role = "gerente"
	RoleFarmSupervisor Role = "supervisor_finca"
	RoleAccountantHR   Role = "contador_rrhh"
	RoleWarehouseClerk Role = "bodeguero"
)

// AllRoles lists every role the system knows. The access table is
// checked against this list at startup.
func AllRoles() []Role {
	return []Role{
		RoleAdministrator,
		RoleManager,
		RoleFarmSupervisor,
		RoleAccountantHR,
		RoleWarehouseClerk,
	}
}

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdministrator, RoleManager, RoleFarmSupervisor, RoleAccountantHR, RoleWarehouseClerk:
		return Role(raw), true
	default:
		return "", false
	}
}

type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	Role           Role
	AssignedFarmID *uuid.UUID
	FarmName       string
	Phone          string
	Active         bool
	CreatedAt      time.Time
}
