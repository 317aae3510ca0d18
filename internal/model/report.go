package model

import "time"

// ProductionReport is the export view of a year of production data,
// already scoped to the requesting principal.
type ProductionReport struct {
	Year        int
	GeneratedAt time.Time
	Harvests    []HarvestRecord
	Baggings    []BaggingRecord
}

// PayrollReport is the export view of one pay week.
type PayrollReport struct {
	Week            int
	Year            int
	GeneratedAt     time.Time
	Records         []PayrollRecord
	TotalGross      float64
	TotalDeductions float64
	TotalNet        float64
}
