package model

import (
	"time"

	"github.com/google/uuid"
)

type PayrollStatus string

const (
	PayrollPending PayrollStatus = "pendiente"
	PayrollPaid    PayrollStatus = "pagado"
)

// PayrollRecord is one week of pay for one employee. Gross, IESS,
// TotalDeductions and NetPay are derived; LoanDeductions is written by
// the engine when the record transitions to paid, never by callers.
type PayrollRecord struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	EmployeeName    string
	FarmID          uuid.UUID
	FarmName        string
	Week            int
	Year            int
	DaysWorked      int
	BasePay         float64
	HarvestBonus    float64
	SpecialTaskPay  float64
	Gross           float64
	IESS            float64
	Fines           float64
	LoanDeductions  float64
	TotalDeductions float64
	NetPay          float64
	Status          PayrollStatus
	LoansApplied    bool
	CreatedAt       time.Time
}

type LoanStatus string

const (
	LoanActive LoanStatus = "activo"
	LoanClosed LoanStatus = "finalizado"
)

// Loan is an employee advance repaid in equal installments.
// InstallmentValue and Outstanding are derived.
type Loan struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	EmployeeName     string
	FarmID           uuid.UUID
	FarmName         string
	Principal        float64
	DisbursementDate time.Time
	Installments     int
	InstallmentValue float64
	InstallmentsPaid int
	Outstanding      float64
	Status           LoanStatus
	CreatedAt        time.Time
}
