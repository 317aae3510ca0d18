package model

import (
	"time"

	"github.com/google/uuid"
)

type LaborType string

const (
	LaborBagging     LaborType = "Enfunde"
	LaborHarvest     LaborType = "Cosecha"
	LaborCalibration LaborType = "Calibración"
	LaborVarious     LaborType = "Varios"
	LaborAdmin       LaborType = "Administrador"
	LaborSupervisor  LaborType = "Supervisor"
	LaborFumigation  LaborType = "Fumigación"
	LaborMaintenance LaborType = "Mantenimiento"
)

type Employee struct {
	ID          uuid.UUID
	FarmID      uuid.UUID
	FarmName    string
	Name        string
	NationalID  string
	Labor       LaborType
	DailyRate   float64
	HireDate    time.Time
	BankAccount string
	Phone       string
	Address     string
	Active      bool
	CreatedAt   time.Time
}
