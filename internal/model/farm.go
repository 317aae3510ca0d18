package model

import (
	"time"

	"github.com/google/uuid"
)

// FarmName is the fixed set of plantation names the enterprise runs.
type FarmName string

const (
	FarmBaby      FarmName = "BABY"
	FarmSolo      FarmName = "SOLO"
	FarmLaurita   FarmName = "LAURITA"
	FarmMaravilla FarmName = "MARAVILLA"
)

func AllFarmNames() []FarmName {
	return []FarmName{FarmBaby, FarmSolo, FarmLaurita, FarmMaravilla}
}

func ParseFarmName(raw string) (FarmName, bool) {
	switch FarmName(raw) {
	case FarmBaby, FarmSolo, FarmLaurita, FarmMaravilla:
		return FarmName(raw), true
	default:
		return "", false
	}
}

type BananaVariety string

const (
	VarietyCavendish BananaVariety = "Cavendish"
	VarietyClon      BananaVariety = "Clon"
	VarietyWilliams  BananaVariety = "Williams"
	VarietyGranEnano BananaVariety = "Gran Enano"
	VarietyOther     BananaVariety = "Otro"
)

type Farm struct {
	ID          uuid.UUID
	Name        FarmName
	Location    string
	Hectares    float64
	TotalPlants int
	Variety     BananaVariety
	Responsible string
	Phone       string
	Geometry    string
	Active      bool
	CreatedAt   time.Time
}
