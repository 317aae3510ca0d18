package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emontalvo/fincaops/internal/access"
	"github.com/emontalvo/fincaops/internal/metrics"
	"github.com/emontalvo/fincaops/internal/model"
)

// PayrollRepository covers employees, weekly payroll records and
// loans. Getters return (nil, nil) when the id is absent.
// SavePayrollAndLoans persists a payroll record together with the loan
// rows it touched in one transaction.
type PayrollRepository interface {
	GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error)

	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	GetEmployeeByNationalID(ctx context.Context, nationalID string) (*model.Employee, error)
	CreateEmployee(ctx context.Context, e *model.Employee) error
	UpdateEmployee(ctx context.Context, e *model.Employee) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error

	ListPayrolls(ctx context.Context) ([]model.PayrollRecord, error)
	GetPayroll(ctx context.Context, id uuid.UUID) (*model.PayrollRecord, error)
	CreatePayroll(ctx context.Context, r *model.PayrollRecord) error
	UpdatePayroll(ctx context.Context, r *model.PayrollRecord) error
	SavePayrollAndLoans(ctx context.Context, r *model.PayrollRecord, loans []model.Loan) error

	ListLoans(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ListLoansByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Loan, error)
	CreateLoan(ctx context.Context, l *model.Loan) error
	UpdateLoan(ctx context.Context, l *model.Loan) error
}

type PayrollService struct {
	repo PayrollRepository
}

func NewPayrollService(repo PayrollRepository) *PayrollService {
	return &PayrollService{repo: repo}
}

func (s *PayrollService) requireView(p model.Principal) error {
	if !access.CanAccess(p.Role, model.ModulePayroll, access.ActionView) {
		return fmt.Errorf("%w: nomina view", ErrPermissionDenied)
	}
	return nil
}

func (s *PayrollService) requireEdit(p model.Principal, farmID uuid.UUID) error {
	if !access.CanAccess(p.Role, model.ModulePayroll, access.ActionEdit) {
		return fmt.Errorf("%w: nomina edit", ErrPermissionDenied)
	}
	if !access.Visible(p, model.ModulePayroll, &farmID) {
		return fmt.Errorf("%w: farm outside principal scope", ErrPermissionDenied)
	}
	return nil
}

// Employees

type CreateEmployeeInput struct {
	FarmID      uuid.UUID
	Name        string
	NationalID  string
	Labor       model.LaborType
	DailyRate   float64
	HireDate    time.Time
	BankAccount string
	Phone       string
	Address     string
}

type UpdateEmployeeInput struct {
	Name      *string
	Labor     *model.LaborType
	DailyRate *float64
	Phone     *string
	Address   *string
	Active    *bool
}

func (s *PayrollService) ListEmployees(ctx context.Context, p model.Principal) ([]model.Employee, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	visible := employees[:0]
	for _, e := range employees {
		if access.Visible(p, model.ModulePayroll, &e.FarmID) {
			visible = append(visible, e)
		}
	}
	return visible, nil
}

func (s *PayrollService) CreateEmployee(ctx context.Context, p model.Principal, in CreateEmployeeInput) (*model.Employee, error) {
	if err := s.requireEdit(p, in.FarmID); err != nil {
		return nil, err
	}
	if in.Name == "" || in.NationalID == "" {
		return nil, fmt.Errorf("%w: name and national id are required", ErrInvalidState)
	}
	if in.DailyRate <= 0 {
		return nil, fmt.Errorf("%w: daily rate must be positive", ErrInvalidState)
	}
	farm, err := s.repo.GetFarm(ctx, in.FarmID)
	if err != nil {
		return nil, err
	}
	if farm == nil {
		return nil, fmt.Errorf("%w: farm %s", ErrNotFound, in.FarmID)
	}
	existing, err := s.repo.GetEmployeeByNationalID(ctx, in.NationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: national id %s already registered", ErrConflict, in.NationalID)
	}

	e := &model.Employee{
		ID:          uuid.New(),
		FarmID:      in.FarmID,
		Name:        in.Name,
		NationalID:  in.NationalID,
		Labor:       in.Labor,
		DailyRate:   in.DailyRate,
		HireDate:    in.HireDate,
		BankAccount: in.BankAccount,
		Phone:       in.Phone,
		Address:     in.Address,
		Active:      true,
	}
	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *PayrollService) UpdateEmployee(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateEmployeeInput) (*model.Employee, error) {
	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: employee %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, e.FarmID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		e.Name = *in.Name
	}
	if in.Labor != nil {
		e.Labor = *in.Labor
	}
	if in.DailyRate != nil {
		if *in.DailyRate <= 0 {
			return nil, fmt.Errorf("%w: daily rate must be positive", ErrInvalidState)
		}
		e.DailyRate = *in.DailyRate
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Address != nil {
		e.Address = *in.Address
	}
	if in.Active != nil {
		e.Active = *in.Active
	}

	if err := s.repo.UpdateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *PayrollService) DeleteEmployee(ctx context.Context, p model.Principal, id uuid.UUID) error {
	e, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: employee %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, e.FarmID); err != nil {
		return err
	}
	return s.repo.DeleteEmployee(ctx, id)
}

// Payroll records

type CreatePayrollInput struct {
	EmployeeID     uuid.UUID
	Week           int
	Year           int
	DaysWorked     int
	BasePay        float64
	HarvestBonus   float64
	SpecialTaskPay float64
	Fines          float64
}

func (s *PayrollService) ListPayrolls(ctx context.Context, p model.Principal) ([]model.PayrollRecord, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	records, err := s.repo.ListPayrolls(ctx)
	if err != nil {
		return nil, err
	}
	visible := records[:0]
	for _, r := range records {
		if access.Visible(p, model.ModulePayroll, &r.FarmID) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

func (s *PayrollService) CreatePayroll(ctx context.Context, p model.Principal, in CreatePayrollInput) (*model.PayrollRecord, error) {
	employee, err := s.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %s", ErrNotFound, in.EmployeeID)
	}
	if err := s.requireEdit(p, employee.FarmID); err != nil {
		return nil, err
	}
	if !validWeek(in.Week) {
		return nil, fmt.Errorf("%w: week must be 1-53", ErrInvalidState)
	}
	if in.DaysWorked < 0 || in.DaysWorked > 7 {
		return nil, fmt.Errorf("%w: days worked must be 0-7", ErrInvalidState)
	}
	if in.BasePay < 0 || in.HarvestBonus < 0 || in.SpecialTaskPay < 0 || in.Fines < 0 {
		return nil, fmt.Errorf("%w: pay components must not be negative", ErrInvalidState)
	}

	derived := metrics.Payroll(metrics.PayrollInput{
		BasePay:        in.BasePay,
		HarvestBonus:   in.HarvestBonus,
		SpecialTaskPay: in.SpecialTaskPay,
		Fines:          in.Fines,
	})

	r := &model.PayrollRecord{
		ID:              uuid.New(),
		EmployeeID:      employee.ID,
		EmployeeName:    employee.Name,
		FarmID:          employee.FarmID,
		Week:            in.Week,
		Year:            in.Year,
		DaysWorked:      in.DaysWorked,
		BasePay:         in.BasePay,
		HarvestBonus:    in.HarvestBonus,
		SpecialTaskPay:  in.SpecialTaskPay,
		Gross:           derived.Gross,
		IESS:            derived.IESS,
		Fines:           in.Fines,
		TotalDeductions: derived.TotalDeductions,
		NetPay:          derived.NetPay,
		Status:          model.PayrollPending,
	}
	if err := s.repo.CreatePayroll(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetPayrollStatus moves a record between pendiente and pagado. On the
// way to pagado one installment of every active loan of the employee
// is collected into the record's loan deductions; moving back reverts
// them. Derived totals are recomputed on both transitions.
func (s *PayrollService) SetPayrollStatus(ctx context.Context, p model.Principal, id uuid.UUID, status model.PayrollStatus) (*model.PayrollRecord, error) {
	if status != model.PayrollPending && status != model.PayrollPaid {
		return nil, fmt.Errorf("%w: unknown payroll status %q", ErrInvalidState, status)
	}
	r, err := s.repo.GetPayroll(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: payroll record %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, r.FarmID); err != nil {
		return nil, err
	}
	if r.Status == status {
		return r, nil
	}

	var touched []model.Loan
	switch status {
	case model.PayrollPaid:
		if !r.LoansApplied {
			loans, err := s.repo.ListLoansByEmployee(ctx, r.EmployeeID)
			if err != nil {
				return nil, err
			}
			total := decimal.Zero
			for _, l := range loans {
				if l.Status != model.LoanActive || l.Outstanding <= 0 {
					continue
				}
				deduction := decimal.Min(
					decimal.NewFromFloat(l.InstallmentValue),
					decimal.NewFromFloat(l.Outstanding),
				)
				total = total.Add(deduction)
				l.InstallmentsPaid++
				l.Outstanding = sub2(l.Outstanding, deduction)
				if l.InstallmentsPaid >= l.Installments || l.Outstanding <= 0 {
					l.Status = model.LoanClosed
				}
				touched = append(touched, l)
			}
			deducted, _ := total.Round(2).Float64()
			r.LoanDeductions = deducted
			r.LoansApplied = len(touched) > 0
		}
	case model.PayrollPending:
		if r.LoansApplied {
			loans, err := s.repo.ListLoansByEmployee(ctx, r.EmployeeID)
			if err != nil {
				return nil, err
			}
			remaining := decimal.NewFromFloat(r.LoanDeductions)
			for _, l := range loans {
				if !remaining.IsPositive() {
					break
				}
				revert := decimal.Min(decimal.NewFromFloat(l.InstallmentValue), remaining)
				if l.InstallmentsPaid > 0 {
					l.InstallmentsPaid--
				}
				l.Outstanding = add2(l.Outstanding, revert)
				l.Status = model.LoanActive
				touched = append(touched, l)
				remaining = remaining.Sub(revert)
			}
			r.LoanDeductions = 0
			r.LoansApplied = false
		}
	}

	derived := metrics.Payroll(metrics.PayrollInput{
		BasePay:        r.BasePay,
		HarvestBonus:   r.HarvestBonus,
		SpecialTaskPay: r.SpecialTaskPay,
		Fines:          r.Fines,
		LoanDeductions: r.LoanDeductions,
	})
	r.Gross = derived.Gross
	r.IESS = derived.IESS
	r.TotalDeductions = derived.TotalDeductions
	r.NetPay = derived.NetPay
	r.Status = status

	if err := s.repo.SavePayrollAndLoans(ctx, r, touched); err != nil {
		return nil, err
	}
	return r, nil
}

// Loans

type CreateLoanInput struct {
	EmployeeID       uuid.UUID
	Principal        float64
	DisbursementDate time.Time
	Installments     int
}

type UpdateLoanInput struct {
	InstallmentsPaid *int
}

func (s *PayrollService) ListLoans(ctx context.Context, p model.Principal) ([]model.Loan, error) {
	if err := s.requireView(p); err != nil {
		return nil, err
	}
	loans, err := s.repo.ListLoans(ctx)
	if err != nil {
		return nil, err
	}
	visible := loans[:0]
	for _, l := range loans {
		if access.Visible(p, model.ModulePayroll, &l.FarmID) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

func (s *PayrollService) CreateLoan(ctx context.Context, p model.Principal, in CreateLoanInput) (*model.Loan, error) {
	employee, err := s.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: employee %s", ErrNotFound, in.EmployeeID)
	}
	if err := s.requireEdit(p, employee.FarmID); err != nil {
		return nil, err
	}

	derived, err := metrics.Loan(metrics.LoanInput{
		Principal:    in.Principal,
		Installments: in.Installments,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	l := &model.Loan{
		ID:               uuid.New(),
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		FarmID:           employee.FarmID,
		Principal:        in.Principal,
		DisbursementDate: in.DisbursementDate,
		Installments:     in.Installments,
		InstallmentValue: derived.InstallmentValue,
		Outstanding:      derived.Outstanding,
		Status:           model.LoanActive,
	}
	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *PayrollService) UpdateLoan(ctx context.Context, p model.Principal, id uuid.UUID, in UpdateLoanInput) (*model.Loan, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: loan %s", ErrNotFound, id)
	}
	if err := s.requireEdit(p, l.FarmID); err != nil {
		return nil, err
	}

	if in.InstallmentsPaid != nil {
		derived, err := metrics.Loan(metrics.LoanInput{
			Principal:        l.Principal,
			Installments:     l.Installments,
			InstallmentsPaid: *in.InstallmentsPaid,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		l.InstallmentsPaid = *in.InstallmentsPaid
		l.InstallmentValue = derived.InstallmentValue
		l.Outstanding = derived.Outstanding
		if l.InstallmentsPaid >= l.Installments || l.Outstanding <= 0 {
			l.Status = model.LoanClosed
		} else {
			l.Status = model.LoanActive
		}
	}

	if err := s.repo.UpdateLoan(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func sub2(a float64, b decimal.Decimal) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(b).Round(2).Float64()
	if v < 0 {
		return 0
	}
	return v
}

func add2(a float64, b decimal.Decimal) float64 {
	v, _ := decimal.NewFromFloat(a).Add(b).Round(2).Float64()
	return v
}
