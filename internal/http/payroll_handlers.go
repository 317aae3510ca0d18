package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
	"github.com/emontalvo/fincaops/internal/service"
)

func (h *Handler) listEmployees(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	employees, err := h.payroll.ListEmployees(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

type createEmployeeRequest struct {
	FarmID      uuid.UUID `json:"finca_id" binding:"required"`
	Name        string    `json:"nombre" binding:"required"`
	NationalID  string    `json:"cedula" binding:"required"`
	Labor       string    `json:"labor" binding:"required"`
	DailyRate   float64   `json:"tarifa_diaria" binding:"required"`
	HireDate    string    `json:"fecha_ingreso" binding:"required"`
	BankAccount string    `json:"cuenta_bancaria"`
	Phone       string    `json:"telefono"`
	Address     string    `json:"direccion"`
}

func (h *Handler) createEmployee(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha_ingreso"})
		return
	}
	employee, err := h.payroll.CreateEmployee(c.Request.Context(), principal, service.CreateEmployeeInput{
		FarmID:      req.FarmID,
		Name:        req.Name,
		NationalID:  req.NationalID,
		Labor:       model.LaborType(req.Labor),
		DailyRate:   req.DailyRate,
		HireDate:    hireDate,
		BankAccount: req.BankAccount,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEmployeeResponse(*employee))
}

type updateEmployeeRequest struct {
	Name      *string  `json:"nombre"`
	Labor     *string  `json:"labor"`
	DailyRate *float64 `json:"tarifa_diaria"`
	Phone     *string  `json:"telefono"`
	Address   *string  `json:"direccion"`
	Active    *bool    `json:"activo"`
}

func (h *Handler) updateEmployee(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateEmployeeInput{
		Name:      req.Name,
		DailyRate: req.DailyRate,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    req.Active,
	}
	if req.Labor != nil {
		l := model.LaborType(*req.Labor)
		in.Labor = &l
	}
	employee, err := h.payroll.UpdateEmployee(c.Request.Context(), principal, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEmployeeResponse(*employee))
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.payroll.DeleteEmployee(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listPayrolls(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	records, err := h.payroll.ListPayrolls(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]payrollResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toPayrollResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

type createPayrollRequest struct {
	EmployeeID     uuid.UUID `json:"empleado_id" binding:"required"`
	Week           int       `json:"semana" binding:"required"`
	Year           int       `json:"anio" binding:"required"`
	DaysWorked     int       `json:"dias_trabajados" binding:"required"`
	BasePay        float64   `json:"sueldo_base" binding:"required"`
	HarvestBonus   float64   `json:"bono_cosecha"`
	SpecialTaskPay float64   `json:"tareas_especiales"`
	Fines          float64   `json:"multas"`
}

func (h *Handler) createPayroll(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.payroll.CreatePayroll(c.Request.Context(), principal, service.CreatePayrollInput{
		EmployeeID:     req.EmployeeID,
		Week:           req.Week,
		Year:           req.Year,
		DaysWorked:     req.DaysWorked,
		BasePay:        req.BasePay,
		HarvestBonus:   req.HarvestBonus,
		SpecialTaskPay: req.SpecialTaskPay,
		Fines:          req.Fines,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPayrollResponse(*record))
}

type setPayrollStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

func (h *Handler) setPayrollStatus(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req setPayrollStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := h.payroll.SetPayrollStatus(c.Request.Context(), principal, id, model.PayrollStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayrollResponse(*record))
}

func (h *Handler) listLoans(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	loans, err := h.payroll.ListLoans(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	c.JSON(http.StatusOK, out)
}

type createLoanRequest struct {
	EmployeeID       uuid.UUID `json:"empleado_id" binding:"required"`
	Principal        float64   `json:"monto" binding:"required"`
	DisbursementDate string    `json:"fecha_entrega" binding:"required"`
	Installments     int       `json:"cuotas" binding:"required"`
}

func (h *Handler) createLoan(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.DisbursementDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha_entrega"})
		return
	}
	loan, err := h.payroll.CreateLoan(c.Request.Context(), principal, service.CreateLoanInput{
		EmployeeID:       req.EmployeeID,
		Principal:        req.Principal,
		DisbursementDate: date,
		Installments:     req.Installments,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toLoanResponse(*loan))
}

type updateLoanRequest struct {
	InstallmentsPaid *int `json:"cuotas_pagadas"`
}

func (h *Handler) updateLoan(c *gin.Context) {
	principal, ok := principalOr401(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loan, err := h.payroll.UpdateLoan(c.Request.Context(), principal, id, service.UpdateLoanInput{
		InstallmentsPaid: req.InstallmentsPaid,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLoanResponse(*loan))
}
