package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type farmResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"nombre"`
	Location    string    `json:"ubicacion"`
	Hectares    float64   `json:"hectareas"`
	TotalPlants int       `json:"plantas_totales"`
	Variety     string    `json:"variedad"`
	Responsible string    `json:"responsable"`
	Phone       string    `json:"telefono"`
	Geometry    string    `json:"geometria,omitempty"`
	Active      bool      `json:"activa"`
	CreatedAt   time.Time `json:"creada_en"`
}

func toFarmResponse(f model.Farm) farmResponse {
	return farmResponse{
		ID:          f.ID,
		Name:        string(f.Name),
		Location:    f.Location,
		Hectares:    f.Hectares,
		TotalPlants: f.TotalPlants,
		Variety:     string(f.Variety),
		Responsible: f.Responsible,
		Phone:       f.Phone,
		Geometry:    f.Geometry,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
	}
}

type userResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"nombre"`
	Role           string     `json:"rol"`
	AssignedFarmID *uuid.UUID `json:"finca_asignada_id,omitempty"`
	FarmName       string     `json:"finca_asignada,omitempty"`
	Phone          string     `json:"telefono"`
	Active         bool       `json:"activo"`
	CreatedAt      time.Time  `json:"creado_en"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		AssignedFarmID: u.AssignedFarmID,
		FarmName:       u.FarmName,
		Phone:          u.Phone,
		Active:         u.Active,
		CreatedAt:      u.CreatedAt,
	}
}

type baggingResponse struct {
	ID           uuid.UUID `json:"id"`
	FarmID       uuid.UUID `json:"finca_id"`
	FarmName     string    `json:"finca"`
	Week         int       `json:"semana"`
	Year         int       `json:"anio"`
	TapeColor    string    `json:"color_cinta"`
	BagCount     int       `json:"fundas"`
	FallenPlants int       `json:"plantas_caidas"`
	Date         time.Time `json:"fecha"`
	Notes        string    `json:"observaciones,omitempty"`
}

func toBaggingResponse(r model.BaggingRecord) baggingResponse {
	return baggingResponse{
		ID:           r.ID,
		FarmID:       r.FarmID,
		FarmName:     r.FarmName,
		Week:         r.Week,
		Year:         r.Year,
		TapeColor:    string(r.TapeColor),
		BagCount:     r.BagCount,
		FallenPlants: r.FallenPlants,
		Date:         r.Date,
		Notes:        r.Notes,
	}
}

type harvestResponse struct {
	ID               uuid.UUID `json:"id"`
	FarmID           uuid.UUID `json:"finca_id"`
	FarmName         string    `json:"finca"`
	Week             int       `json:"semana"`
	Year             int       `json:"anio"`
	BunchesCut       int       `json:"racimos_cortados"`
	BunchesRejected  int       `json:"racimos_rechazados"`
	BunchesRecovered int       `json:"racimos_recuperados"`
	BoxesProduced    int       `json:"cajas_producidas"`
	AverageWeight    float64   `json:"peso_promedio"`
	Caliber          float64   `json:"calibre"`
	Hands            int       `json:"manos"`
	Ratio            float64   `json:"ratio"`
	WastePct         float64   `json:"merma_pct"`
	Date             time.Time `json:"fecha"`
}

func toHarvestResponse(r model.HarvestRecord) harvestResponse {
	return harvestResponse{
		ID:               r.ID,
		FarmID:           r.FarmID,
		FarmName:         r.FarmName,
		Week:             r.Week,
		Year:             r.Year,
		BunchesCut:       r.BunchesCut,
		BunchesRejected:  r.BunchesRejected,
		BunchesRecovered: r.BunchesRecovered,
		BoxesProduced:    r.BoxesProduced,
		AverageWeight:    r.AverageWeight,
		Caliber:          r.Caliber,
		Hands:            r.Hands,
		Ratio:            r.Ratio,
		WastePct:         r.WastePct,
		Date:             r.Date,
	}
}

type tapeRecoveryResponse struct {
	ID               uuid.UUID `json:"id"`
	FarmID           uuid.UUID `json:"finca_id"`
	FarmName         string    `json:"finca"`
	Week             int       `json:"semana"`
	Year             int       `json:"anio"`
	InitialBags      int       `json:"fundas_iniciales"`
	FirstCalHarvest  int       `json:"primera_cal_cosecha"`
	FirstCalBalance  int       `json:"primera_cal_saldo"`
	SecondCalHarvest int       `json:"segunda_cal_cosecha"`
	SecondCalBalance int       `json:"segunda_cal_saldo"`
	ThirdCalHarvest  int       `json:"tercera_cal_cosecha"`
	ThirdCalBalance  int       `json:"tercera_cal_saldo"`
	FinalSweep       int       `json:"barrida_final"`
	RecoveryPct      float64   `json:"recuperacion_pct"`
	Date             time.Time `json:"fecha"`
}

func toTapeRecoveryResponse(r model.TapeRecovery) tapeRecoveryResponse {
	return tapeRecoveryResponse{
		ID:               r.ID,
		FarmID:           r.FarmID,
		FarmName:         r.FarmName,
		Week:             r.Week,
		Year:             r.Year,
		InitialBags:      r.InitialBags,
		FirstCalHarvest:  r.FirstCalHarvest,
		FirstCalBalance:  r.FirstCalBalance,
		SecondCalHarvest: r.SecondCalHarvest,
		SecondCalBalance: r.SecondCalBalance,
		ThirdCalHarvest:  r.ThirdCalHarvest,
		ThirdCalBalance:  r.ThirdCalBalance,
		FinalSweep:       r.FinalSweep,
		RecoveryPct:      r.RecoveryPct,
		Date:             r.Date,
	}
}

type employeeResponse struct {
	ID          uuid.UUID `json:"id"`
	FarmID      uuid.UUID `json:"finca_id"`
	FarmName    string    `json:"finca"`
	Name        string    `json:"nombre"`
	NationalID  string    `json:"cedula"`
	Labor       string    `json:"labor"`
	DailyRate   float64   `json:"tarifa_diaria"`
	HireDate    time.Time `json:"fecha_ingreso"`
	BankAccount string    `json:"cuenta_bancaria,omitempty"`
	Phone       string    `json:"telefono,omitempty"`
	Address     string    `json:"direccion,omitempty"`
	Active      bool      `json:"activo"`
}

func toEmployeeResponse(e model.Employee) employeeResponse {
	return employeeResponse{
		ID:          e.ID,
		FarmID:      e.FarmID,
		FarmName:    e.FarmName,
		Name:        e.Name,
		NationalID:  e.NationalID,
		Labor:       string(e.Labor),
		DailyRate:   e.DailyRate,
		HireDate:    e.HireDate,
		BankAccount: e.BankAccount,
		Phone:       e.Phone,
		Address:     e.Address,
		Active:      e.Active,
	}
}

type payrollResponse struct {
	ID              uuid.UUID `json:"id"`
	EmployeeID      uuid.UUID `json:"empleado_id"`
	EmployeeName    string    `json:"empleado"`
	FarmID          uuid.UUID `json:"finca_id"`
	FarmName        string    `json:"finca"`
	Week            int       `json:"semana"`
	Year            int       `json:"anio"`
	DaysWorked      int       `json:"dias_trabajados"`
	BasePay         float64   `json:"sueldo_base"`
	HarvestBonus    float64   `json:"bono_cosecha"`
	SpecialTaskPay  float64   `json:"tareas_especiales"`
	Gross           float64   `json:"total_ingresos"`
	IESS            float64   `json:"iess"`
	Fines           float64   `json:"multas"`
	LoanDeductions  float64   `json:"descuento_prestamos"`
	TotalDeductions float64   `json:"total_descuentos"`
	NetPay          float64   `json:"neto_pagar"`
	Status          string    `json:"estado"`
}

func toPayrollResponse(r model.PayrollRecord) payrollResponse {
	return payrollResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		FarmID:          r.FarmID,
		FarmName:        r.FarmName,
		Week:            r.Week,
		Year:            r.Year,
		DaysWorked:      r.DaysWorked,
		BasePay:         r.BasePay,
		HarvestBonus:    r.HarvestBonus,
		SpecialTaskPay:  r.SpecialTaskPay,
		Gross:           r.Gross,
		IESS:            r.IESS,
		Fines:           r.Fines,
		LoanDeductions:  r.LoanDeductions,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		Status:          string(r.Status),
	}
}

type loanResponse struct {
	ID               uuid.UUID `json:"id"`
	EmployeeID       uuid.UUID `json:"empleado_id"`
	EmployeeName     string    `json:"empleado"`
	FarmID           uuid.UUID `json:"finca_id"`
	FarmName         string    `json:"finca"`
	Principal        float64   `json:"monto"`
	DisbursementDate time.Time `json:"fecha_entrega"`
	Installments     int       `json:"cuotas"`
	InstallmentValue float64   `json:"valor_cuota"`
	InstallmentsPaid int       `json:"cuotas_pagadas"`
	Outstanding      float64   `json:"saldo_pendiente"`
	Status           string    `json:"estado"`
}

func toLoanResponse(l model.Loan) loanResponse {
	return loanResponse{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		EmployeeName:     l.EmployeeName,
		FarmID:           l.FarmID,
		FarmName:         l.FarmName,
		Principal:        l.Principal,
		DisbursementDate: l.DisbursementDate,
		Installments:     l.Installments,
		InstallmentValue: l.InstallmentValue,
		InstallmentsPaid: l.InstallmentsPaid,
		Outstanding:      l.Outstanding,
		Status:           string(l.Status),
	}
}

type supplyResponse struct {
	ID           uuid.UUID  `json:"id"`
	FarmID       *uuid.UUID `json:"finca_id,omitempty"`
	FarmName     string     `json:"finca"`
	Name         string     `json:"nombre"`
	Category     string     `json:"categoria"`
	Supplier     string     `json:"proveedor,omitempty"`
	Unit         string     `json:"unidad"`
	CurrentStock float64    `json:"stock_actual"`
	MinimumStock float64    `json:"stock_minimo"`
	MaximumStock float64    `json:"stock_maximo"`
	UnitPrice    float64    `json:"precio_unitario"`
	ExpiryDate   *time.Time `json:"fecha_caducidad,omitempty"`
	OrderPlaced  bool       `json:"pedido_generado"`
}

func toSupplyResponse(s model.Supply) supplyResponse {
	return supplyResponse{
		ID:           s.ID,
		FarmID:       s.FarmID,
		FarmName:     s.FarmName,
		Name:         s.Name,
		Category:     string(s.Category),
		Supplier:     s.Supplier,
		Unit:         string(s.Unit),
		CurrentStock: s.CurrentStock,
		MinimumStock: s.MinimumStock,
		MaximumStock: s.MaximumStock,
		UnitPrice:    s.UnitPrice,
		ExpiryDate:   s.ExpiryDate,
		OrderPlaced:  s.OrderPlaced,
	}
}

type movementResponse struct {
	ID          uuid.UUID  `json:"id"`
	SupplyID    uuid.UUID  `json:"insumo_id"`
	SupplyName  string     `json:"insumo"`
	FarmID      *uuid.UUID `json:"finca_id,omitempty"`
	FarmName    string     `json:"finca"`
	Type        string     `json:"tipo"`
	Quantity    float64    `json:"cantidad"`
	Date        time.Time  `json:"fecha"`
	Reason      string     `json:"motivo,omitempty"`
	Responsible string     `json:"responsable,omitempty"`
}

func toMovementResponse(m model.InventoryMovement) movementResponse {
	return movementResponse{
		ID:          m.ID,
		SupplyID:    m.SupplyID,
		SupplyName:  m.SupplyName,
		FarmID:      m.FarmID,
		FarmName:    m.FarmName,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Date:        m.Date,
		Reason:      m.Reason,
		Responsible: m.Responsible,
	}
}

type alertResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"tipo"`
	Module         string     `json:"modulo"`
	Title          string     `json:"titulo"`
	Description    string     `json:"descripcion"`
	Date           time.Time  `json:"fecha"`
	Read           bool       `json:"leida"`
	RequiredAction string     `json:"accion_requerida,omitempty"`
	FarmID         *uuid.UUID `json:"finca_id,omitempty"`
	FarmName       string     `json:"finca,omitempty"`
}

func toAlertResponse(a model.Alert) alertResponse {
	return alertResponse{
		ID:             a.ID,
		Type:           string(a.Type),
		Module:         string(a.Module),
		Title:          a.Title,
		Description:    a.Description,
		Date:           a.Date,
		Read:           a.Read,
		RequiredAction: a.RequiredAction,
		FarmID:         a.FarmID,
		FarmName:       a.FarmName,
	}
}
