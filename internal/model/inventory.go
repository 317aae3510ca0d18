package model

import (
	"time"

	"github.com/google/uuid"
)

type SupplyCategory string

const (
	CategoryFertilizer SupplyCategory = "fertilizante"
	CategoryProtector  SupplyCategory = "protector"
	CategoryTool       SupplyCategory = "herramienta"
	CategoryPackaging  SupplyCategory = "empaque"
	CategoryChemical   SupplyCategory = "quimico"
	CategoryOther      SupplyCategory = "otro"
)

type MeasureUnit string

const (
	UnitUnit   MeasureUnit = "unidad"
	UnitKg     MeasureUnit = "kg"
	UnitLiter  MeasureUnit = "litro"
	UnitMeter  MeasureUnit = "metro"
	UnitRoll   MeasureUnit = "rollo"
	UnitBox    MeasureUnit = "caja"
	UnitPair   MeasureUnit = "par"
	UnitGallon MeasureUnit = "galon"
	UnitSack   MeasureUnit = "saco"
)

// Supply is a warehouse item. FarmID is optional: nil means the item
// belongs to the central warehouse and is visible everywhere.
type Supply struct {
	ID           uuid.UUID
	FarmID       *uuid.UUID
	FarmName     string
	Name         string
	Category     SupplyCategory
	Supplier     string
	Unit         MeasureUnit
	CurrentStock float64
	MinimumStock float64
	MaximumStock float64
	UnitPrice    float64
	ExpiryDate   *time.Time
	OrderPlaced  bool
	CreatedAt    time.Time
}

type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "salida"
)

type InventoryMovement struct {
	ID            uuid.UUID
	SupplyID      uuid.UUID
	SupplyName    string
	FarmID        *uuid.UUID
	FarmName      string
	Type          MovementType
	Quantity      float64
	Date          time.Time
	Reason        string
	ResponsibleID *uuid.UUID
	Responsible   string
	CreatedAt     time.Time
}
