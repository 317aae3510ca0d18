package model

import (
	"time"

	"github.com/google/uuid"
)

// Module names the functional areas access is granted per.
type Module string

const (
	ModuleDashboard     Module = "dashboard"
	ModuleProduction    Module = "produccion"
	ModulePayroll       Module = "nomina"
	ModuleInventory     Module = "inventario"
	ModuleReports       Module = "reportes"
	ModuleAnalytics     Module = "analytics"
	ModuleGeo           Module = "geovisualizacion"
	ModuleConfiguration Module = "configuracion"
)

func AllModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleProduction,
		ModulePayroll,
		ModuleInventory,
		ModuleReports,
		ModuleAnalytics,
		ModuleGeo,
		ModuleConfiguration,
	}
}

type AlertType string

const (
	AlertCritical AlertType = "critico"
	AlertWarning  AlertType = "advertencia"
	AlertInfo     AlertType = "info"
)

// Alert is the one entity the engine writes on its own. Derived alerts
// carry a stable string ID keyed by their source record so refreshing
// upserts instead of duplicating.
type Alert struct {
	ID             string
	Type           AlertType
	Module         Module
	Title          string
	Description    string
	Date           time.Time
	Read           bool
	RequiredAction string
	FarmID         *uuid.UUID
	FarmName       string
	AllowedRoles   []Role
}

// VisibleTo reports whether the alert may be shown to the given role.
// An empty AllowedRoles set means unrestricted.
func (a Alert) VisibleTo(role Role) bool {
	if len(a.AllowedRoles) == 0 {
		return true
	}
	for _, r := range a.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
