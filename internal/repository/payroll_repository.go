package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emontalvo/fincaops/internal/model"
)

type PayrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepository(db *gorm.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

func (r *PayrollRepository) GetFarm(ctx context.Context, id uuid.UUID) (*model.Farm, error) {
	return getFarm(ctx, r.db, id)
}

const employeeColumns = `
	e.id, e.farm_id, COALESCE(f.name, 'Sin asignar') AS farm_name,
	e.name, e.national_id, e.labor, e.daily_rate, e.hire_date,
	e.bank_account, e.phone, e.address, e.active, e.created_at`

func (r *PayrollRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN farms f ON f.id = e.farm_id
		ORDER BY e.name
	`).Scan(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *PayrollRepository) GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN farms f ON f.id = e.farm_id
		WHERE e.id = ?
		LIMIT 1
	`, id).Scan(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, nil
	}
	return &e, nil
}

func (r *PayrollRepository) GetEmployeeByNationalID(ctx context.Context, nationalID string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+employeeColumns+`
		FROM employees e
		LEFT JOIN farms f ON f.id = e.farm_id
		WHERE e.national_id = ?
		LIMIT 1
	`, nationalID).Scan(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, nil
	}
	return &e, nil
}

func (r *PayrollRepository) CreateEmployee(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO employees (
			id, farm_id, name, national_id, labor, daily_rate, hire_date,
			bank_account, phone, address, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, e.ID, e.FarmID, e.Name, e.NationalID, e.Labor, e.DailyRate, e.HireDate,
		e.BankAccount, e.Phone, e.Address, e.Active).Error
}

func (r *PayrollRepository) UpdateEmployee(ctx context.Context, e *model.Employee) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(`
		UPDATE employees
		SET farm_id = ?, name = ?, national_id = ?, labor = ?, daily_rate = ?,
			hire_date = ?, bank_account = ?, phone = ?, address = ?, active = ?
		WHERE id = ?
	`, e.FarmID, e.Name, e.NationalID, e.Labor, e.DailyRate,
		e.HireDate, e.BankAccount, e.Phone, e.Address, e.Active, e.ID))
}

func (r *PayrollRepository) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM employees WHERE id = ?`, id).Error
}

const payrollColumns = `
	p.id, p.employee_id, COALESCE(e.name, 'Sin asignar') AS employee_name,
	p.farm_id, COALESCE(f.name, 'Sin asignar') AS farm_name,
	p.week, p.year, p.days_worked, p.base_pay, p.harvest_bonus, p.special_task_pay,
	p.gross, p.iess, p.fines, p.loan_deductions, p.total_deductions, p.net_pay,
	p.status, p.loans_applied, p.created_at`

func (r *PayrollRepository) ListPayrolls(ctx context.Context) ([]model.PayrollRecord, error) {
	var records []model.PayrollRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+payrollColumns+`
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		LEFT JOIN farms f ON f.id = p.farm_id
		ORDER BY p.year DESC, p.week DESC, employee_name
	`).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PayrollRepository) GetPayroll(ctx context.Context, id uuid.UUID) (*model.PayrollRecord, error) {
	var rec model.PayrollRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+payrollColumns+`
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		LEFT JOIN farms f ON f.id = p.farm_id
		WHERE p.id = ?
		LIMIT 1
	`, id).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *PayrollRepository) CreatePayroll(ctx context.Context, rec *model.PayrollRecord) error {
	return r.db.WithContext(ctx).Exec(insertPayrollSQL, payrollArgs(rec)...).Error
}

func (r *PayrollRepository) UpdatePayroll(ctx context.Context, rec *model.PayrollRecord) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(updatePayrollSQL, updatePayrollArgs(rec)...))
}

// SavePayrollAndLoans persists a status transition together with the
// loan rows it touched. Either everything lands or nothing does.
func (r *PayrollRepository) SavePayrollAndLoans(ctx context.Context, rec *model.PayrollRecord, loans []model.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exactlyOne(tx.Exec(updatePayrollSQL, updatePayrollArgs(rec)...)); err != nil {
			return err
		}
		for i := range loans {
			l := &loans[i]
			if err := exactlyOne(tx.Exec(updateLoanSQL, updateLoanArgs(l)...)); err != nil {
				return err
			}
		}
		return nil
	})
}

const insertPayrollSQL = `
	INSERT INTO payroll_records (
		id, employee_id, farm_id, week, year, days_worked,
		base_pay, harvest_bonus, special_task_pay,
		gross, iess, fines, loan_deductions, total_deductions, net_pay,
		status, loans_applied, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

func payrollArgs(rec *model.PayrollRecord) []any {
	return []any{
		rec.ID, rec.EmployeeID, rec.FarmID, rec.Week, rec.Year, rec.DaysWorked,
		rec.BasePay, rec.HarvestBonus, rec.SpecialTaskPay,
		rec.Gross, rec.IESS, rec.Fines, rec.LoanDeductions, rec.TotalDeductions, rec.NetPay,
		rec.Status, rec.LoansApplied,
	}
}

const updatePayrollSQL = `
	UPDATE payroll_records
	SET week = ?, year = ?, days_worked = ?,
		base_pay = ?, harvest_bonus = ?, special_task_pay = ?,
		gross = ?, iess = ?, fines = ?, loan_deductions = ?,
		total_deductions = ?, net_pay = ?, status = ?, loans_applied = ?
	WHERE id = ?`

func updatePayrollArgs(rec *model.PayrollRecord) []any {
	return []any{
		rec.Week, rec.Year, rec.DaysWorked,
		rec.BasePay, rec.HarvestBonus, rec.SpecialTaskPay,
		rec.Gross, rec.IESS, rec.Fines, rec.LoanDeductions,
		rec.TotalDeductions, rec.NetPay, rec.Status, rec.LoansApplied,
		rec.ID,
	}
}

const loanColumns = `
	l.id, l.employee_id, COALESCE(e.name, 'Sin asignar') AS employee_name,
	l.farm_id, COALESCE(f.name, 'Sin asignar') AS farm_name,
	l.principal, l.disbursement_date, l.installments, l.installment_value,
	l.installments_paid, l.outstanding, l.status, l.created_at`

func (r *PayrollRepository) ListLoans(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+loanColumns+`
		FROM loans l
		LEFT JOIN employees e ON e.id = l.employee_id
		LEFT JOIN farms f ON f.id = l.farm_id
		ORDER BY l.disbursement_date DESC
	`).Scan(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *PayrollRepository) GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	var l model.Loan
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+loanColumns+`
		FROM loans l
		LEFT JOIN employees e ON e.id = l.employee_id
		LEFT JOIN farms f ON f.id = l.farm_id
		WHERE l.id = ?
		LIMIT 1
	`, id).Scan(&l).Error
	if err != nil {
		return nil, err
	}
	if l.ID == uuid.Nil {
		return nil, nil
	}
	return &l, nil
}

func (r *PayrollRepository) ListLoansByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Loan, error) {
	var loans []model.Loan
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+loanColumns+`
		FROM loans l
		LEFT JOIN employees e ON e.id = l.employee_id
		LEFT JOIN farms f ON f.id = l.farm_id
		WHERE l.employee_id = ?
		ORDER BY l.disbursement_date
	`, employeeID).Scan(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *PayrollRepository) CreateLoan(ctx context.Context, l *model.Loan) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO loans (
			id, employee_id, farm_id, principal, disbursement_date,
			installments, installment_value, installments_paid, outstanding,
			status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`, l.ID, l.EmployeeID, l.FarmID, l.Principal, l.DisbursementDate,
		l.Installments, l.InstallmentValue, l.InstallmentsPaid, l.Outstanding,
		l.Status).Error
}

func (r *PayrollRepository) UpdateLoan(ctx context.Context, l *model.Loan) error {
	return exactlyOne(r.db.WithContext(ctx).Exec(updateLoanSQL, updateLoanArgs(l)...))
}

const updateLoanSQL = `
	UPDATE loans
	SET principal = ?, disbursement_date = ?, installments = ?,
		installment_value = ?, installments_paid = ?, outstanding = ?, status = ?
	WHERE id = ?`

func updateLoanArgs(l *model.Loan) []any {
	return []any{
		l.Principal, l.DisbursementDate, l.Installments,
		l.InstallmentValue, l.InstallmentsPaid, l.Outstanding, l.Status,
		l.ID,
	}
}
