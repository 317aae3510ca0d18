package model

import (
	"time"

	"github.com/google/uuid"
)

type TapeColor string

const (
	TapeBlue   TapeColor = "azul"
	TapeRed    TapeColor = "rojo"
	TapeYellow TapeColor = "amarillo"
	TapeGreen  TapeColor = "verde"
	TapeOrange TapeColor = "naranja"
	TapePurple TapeColor = "morado"
	TapePink   TapeColor = "rosado"
	TapeWhite  TapeColor = "blanco"
)

// BaggingRecord is one week of enfunde work on a farm.
type BaggingRecord struct {
	ID           uuid.UUID
	FarmID       uuid.UUID
	FarmName     string
	Week         int
	Year         int
	TapeColor    TapeColor
	BagCount     int
	FallenPlants int
	Date         time.Time
	Notes        string
	CreatedAt    time.Time
}

// HarvestRecord is one week of cosecha on a farm. BunchesRecovered,
// Ratio and WastePct are derived and never accepted from callers.
type HarvestRecord struct {
	ID               uuid.UUID
	FarmID           uuid.UUID
	FarmName         string
	Week             int
	Year             int
	BunchesCut       int
	BunchesRejected  int
	BunchesRecovered int
	BoxesProduced    int
	AverageWeight    float64
	Caliber          float64
	Hands            int
	Ratio            float64
	WastePct         float64
	Date             time.Time
	CreatedAt        time.Time
}

// TapeRecovery tracks how many of a week's bags came back through the
// three calibration harvests and the final sweep. RecoveryPct is
// derived.
type TapeRecovery struct {
	ID               uuid.UUID
	FarmID           uuid.UUID
	FarmName         string
	Week             int
	Year             int
	InitialBags      int
	FirstCalHarvest  int
	FirstCalBalance  int
	SecondCalHarvest int
	SecondCalBalance int
	ThirdCalHarvest  int
	ThirdCalBalance  int
	FinalSweep       int
	RecoveryPct      float64
	Date             time.Time
	CreatedAt        time.Time
}
