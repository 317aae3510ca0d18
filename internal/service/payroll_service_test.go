package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/emontalvo/fincaops/internal/model"
)

type fakePayrollRepo struct {
	farms     map[uuid.UUID]model.Farm
	employees map[uuid.UUID]model.Employee
	payrolls  map[uuid.UUID]model.PayrollRecord
	loans     map[uuid.UUID]model.Loan
	saveErr   error
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		farms:     map[uuid.UUID]model.Farm{},
		employees: map[uuid.UUID]model.Employee{},
		payrolls:  map[uuid.UUID]model.PayrollRecord{},
		loans:     map[uuid.UUID]model.Loan{},
	}
}

func (f *fakePayrollRepo) addFarm(name model.FarmName) uuid.UUID {
	id := uuid.New()
	f.farms[id] = model.Farm{ID: id, Name: name, Hectares: 10, Active: true}
	return id
}

func (f *fakePayrollRepo) addEmployee(farmID uuid.UUID, name string) uuid.UUID {
	id := uuid.New()
	f.employees[id] = model.Employee{
		ID: id, FarmID: farmID, Name: name, NationalID: uuid.NewString(),
		Labor: model.LaborHarvest, DailyRate: 20, Active: true,
	}
	return id
}

func (f *fakePayrollRepo) GetFarm(_ context.Context, id uuid.UUID) (*model.Farm, error) {
	if farm, ok := f.farms[id]; ok {
		return &farm, nil
	}
	return nil, nil
}

func (f *fakePayrollRepo) ListEmployees(context.Context) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakePayrollRepo) GetEmployeeByNationalID(_ context.Context, nationalID string) (*model.Employee, error) {
	for _, e := range f.employees {
		if e.NationalID == nationalID {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) CreateEmployee(_ context.Context, e *model.Employee) error {
	f.employees[e.ID] = *e
	return nil
}

func (f *fakePayrollRepo) UpdateEmployee(_ context.Context, e *model.Employee) error {
	f.employees[e.ID] = *e
	return nil
}

func (f *fakePayrollRepo) DeleteEmployee(_ context.Context, id uuid.UUID) error {
	delete(f.employees, id)
	return nil
}

func (f *fakePayrollRepo) ListPayrolls(context.Context) ([]model.PayrollRecord, error) {
	out := make([]model.PayrollRecord, 0, len(f.payrolls))
	for _, r := range f.payrolls {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetPayroll(_ context.Context, id uuid.UUID) (*model.PayrollRecord, error) {
	if r, ok := f.payrolls[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakePayrollRepo) CreatePayroll(_ context.Context, r *model.PayrollRecord) error {
	f.payrolls[r.ID] = *r
	return nil
}

func (f *fakePayrollRepo) UpdatePayroll(_ context.Context, r *model.PayrollRecord) error {
	f.payrolls[r.ID] = *r
	return nil
}

func (f *fakePayrollRepo) SavePayrollAndLoans(_ context.Context, r *model.PayrollRecord, loans []model.Loan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.payrolls[r.ID] = *r
	for _, l := range loans {
		f.loans[l.ID] = l
	}
	return nil
}

func (f *fakePayrollRepo) ListLoans(context.Context) ([]model.Loan, error) {
	out := make([]model.Loan, 0, len(f.loans))
	for _, l := range f.loans {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetLoan(_ context.Context, id uuid.UUID) (*model.Loan, error) {
	if l, ok := f.loans[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakePayrollRepo) ListLoansByEmployee(_ context.Context, employeeID uuid.UUID) ([]model.Loan, error) {
	var out []model.Loan
	for _, l := range f.loans {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) CreateLoan(_ context.Context, l *model.Loan) error {
	f.loans[l.ID] = *l
	return nil
}

func (f *fakePayrollRepo) UpdateLoan(_ context.Context, l *model.Loan) error {
	f.loans[l.ID] = *l
	return nil
}

func accountant() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleAccountantHR}
}

func TestCreatePayrollDerivesIESS(t *testing.T) {
	repo := newFakePayrollRepo()
	farm := repo.addFarm(model.FarmBaby)
	employee := repo.addEmployee(farm, "Rosa Vera")
	svc := NewPayrollService(repo)

	r, err := svc.CreatePayroll(context.Background(), accountant(), CreatePayrollInput{
		EmployeeID: employee, Week: 20, Year: 2025, DaysWorked: 5,
		BasePay: 100, HarvestBonus: 40, SpecialTaskPay: 10, Fines: 5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, want := r.Gross, 150.0; absDiff(got, want) > 0.01 {
		t.Errorf("gross = %v, want %v", got, want)
	}
	if got, want := r.IESS, 14.18; absDiff(got, want) > 0.01 {
		t.Errorf("iess = %v, want %v", got, want)
	}
	if got, want := r.TotalDeductions, 19.18; absDiff(got, want) > 0.01 {
		t.Errorf("deductions = %v, want %v", got, want)
	}
	if got, want := r.NetPay, 130.82; absDiff(got, want) > 0.01 {
		t.Errorf("net = %v, want %v", got, want)
	}
	if r.Status != model.PayrollPending {
		t.Errorf("status = %s, want pendiente", r.Status)
	}
}

func TestPayrollPaidAppliesLoanInstallments(t *testing.T) {
	repo := newFakePayrollRepo()
	farm := repo.addFarm(model.FarmBaby)
	employee := repo.addEmployee(farm, "Rosa Vera")
	svc := NewPayrollService(repo)
	ctx := context.Background()
	acct := accountant()

	loan, err := svc.CreateLoan(ctx, acct, CreateLoanInput{
		EmployeeID: employee, Principal: 300, DisbursementDate: time.Now(), Installments: 3,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	if got, want := loan.InstallmentValue, 100.0; absDiff(got, want) > 0.01 {
		t.Fatalf("installment = %v, want %v", got, want)
	}

	r, err := svc.CreatePayroll(ctx, acct, CreatePayrollInput{
		EmployeeID: employee, Week: 20, Year: 2025, DaysWorked: 5, BasePay: 200,
	})
	if err != nil {
		t.Fatalf("create payroll: %v", err)
	}

	paid, err := svc.SetPayrollStatus(ctx, acct, r.ID, model.PayrollPaid)
	if err != nil {
		t.Fatalf("set paid: %v", err)
	}
	if got, want := paid.LoanDeductions, 100.0; absDiff(got, want) > 0.01 {
		t.Errorf("loan deductions = %v, want %v", got, want)
	}
	if !paid.LoansApplied {
		t.Error("loans applied flag not set")
	}

	stored := repo.loans[loan.ID]
	if stored.InstallmentsPaid != 1 {
		t.Errorf("installments paid = %d, want 1", stored.InstallmentsPaid)
	}
	if got, want := stored.Outstanding, 200.0; absDiff(got, want) > 0.01 {
		t.Errorf("outstanding = %v, want %v", got, want)
	}
	if stored.Status != model.LoanActive {
		t.Errorf("loan status = %s, want activo", stored.Status)
	}

	// Paying again must not double-deduct.
	again, err := svc.SetPayrollStatus(ctx, acct, r.ID, model.PayrollPaid)
	if err != nil {
		t.Fatalf("set paid twice: %v", err)
	}
	if got := repo.loans[loan.ID].InstallmentsPaid; got != 1 {
		t.Errorf("installments paid after repeat = %d, want 1", got)
	}
	if got, want := again.LoanDeductions, 100.0; absDiff(got, want) > 0.01 {
		t.Errorf("deductions after repeat = %v, want %v", got, want)
	}
}

func TestPayrollRevertRestoresLoans(t *testing.T) {
	repo := newFakePayrollRepo()
	farm := repo.addFarm(model.FarmBaby)
	employee := repo.addEmployee(farm, "Rosa Vera")
	svc := NewPayrollService(repo)
	ctx := context.Background()
	acct := accountant()

	loan, err := svc.CreateLoan(ctx, acct, CreateLoanInput{
		EmployeeID: employee, Principal: 100, DisbursementDate: time.Now(), Installments: 1,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}

	r, err := svc.CreatePayroll(ctx, acct, CreatePayrollInput{
		EmployeeID: employee, Week: 21, Year: 2025, DaysWorked: 5, BasePay: 200,
	})
	if err != nil {
		t.Fatalf("create payroll: %v", err)
	}

	if _, err := svc.SetPayrollStatus(ctx, acct, r.ID, model.PayrollPaid); err != nil {
		t.Fatalf("set paid: %v", err)
	}
	if got := repo.loans[loan.ID].Status; got != model.LoanClosed {
		t.Fatalf("loan status after final installment = %s, want finalizado", got)
	}

	reverted, err := svc.SetPayrollStatus(ctx, acct, r.ID, model.PayrollPending)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}
	if reverted.LoanDeductions != 0 {
		t.Errorf("deductions after revert = %v, want 0", reverted.LoanDeductions)
	}
	if reverted.LoansApplied {
		t.Error("loans applied flag still set after revert")
	}
	stored := repo.loans[loan.ID]
	if stored.InstallmentsPaid != 0 {
		t.Errorf("installments paid after revert = %d, want 0", stored.InstallmentsPaid)
	}
	if got, want := stored.Outstanding, 100.0; absDiff(got, want) > 0.01 {
		t.Errorf("outstanding after revert = %v, want %v", got, want)
	}
	if stored.Status != model.LoanActive {
		t.Errorf("loan status after revert = %s, want activo", stored.Status)
	}
}

func TestPayrollStatusFailureLeavesNothingBehind(t *testing.T) {
	repo := newFakePayrollRepo()
	farm := repo.addFarm(model.FarmBaby)
	employee := repo.addEmployee(farm, "Rosa Vera")
	svc := NewPayrollService(repo)
	ctx := context.Background()
	acct := accountant()

	loan, err := svc.CreateLoan(ctx, acct, CreateLoanInput{
		EmployeeID: employee, Principal: 300, DisbursementDate: time.Now(), Installments: 3,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	r, err := svc.CreatePayroll(ctx, acct, CreatePayrollInput{
		EmployeeID: employee, Week: 22, Year: 2025, DaysWorked: 5, BasePay: 200,
	})
	if err != nil {
		t.Fatalf("create payroll: %v", err)
	}

	repo.saveErr = errors.New("db down")
	if _, err := svc.SetPayrollStatus(ctx, acct, r.ID, model.PayrollPaid); err == nil {
		t.Fatal("expected save error")
	}
	if got := repo.payrolls[r.ID].Status; got != model.PayrollPending {
		t.Errorf("payroll status after failed save = %s, want pendiente", got)
	}
	if got := repo.loans[loan.ID].InstallmentsPaid; got != 0 {
		t.Errorf("installments paid after failed save = %d, want 0", got)
	}
}

func TestEmployeeNationalIDConflict(t *testing.T) {
	repo := newFakePayrollRepo()
	farm := repo.addFarm(model.FarmBaby)
	svc := NewPayrollService(repo)
	ctx := context.Background()
	acct := accountant()

	first, err := svc.CreateEmployee(ctx, acct, CreateEmployeeInput{
		FarmID: farm, Name: "Rosa Vera", NationalID: "0912345678",
		Labor: model.LaborHarvest, DailyRate: 18, HireDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = first

	if _, err := svc.CreateEmployee(ctx, acct, CreateEmployeeInput{
		FarmID: farm, Name: "Otra Persona", NationalID: "0912345678",
		Labor: model.LaborBagging, DailyRate: 18, HireDate: time.Now(),
	}); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestPayrollAccessByRole(t *testing.T) {
	repo := newFakePayrollRepo()
	baby := repo.addFarm(model.FarmBaby)
	solo := repo.addFarm(model.FarmSolo)
	svc := NewPayrollService(repo)
	ctx := context.Background()
	acct := accountant()

	for _, farmID := range []uuid.UUID{baby, solo} {
		employee := repo.addEmployee(farmID, "Empleado")
		if _, err := svc.CreatePayroll(ctx, acct, CreatePayrollInput{
			EmployeeID: employee, Week: 20, Year: 2025, DaysWorked: 5, BasePay: 100,
		}); err != nil {
			t.Fatalf("create payroll: %v", err)
		}
	}

	if _, err := svc.ListPayrolls(ctx, supervisorOf(baby)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("supervisor list err = %v, want ErrPermissionDenied", err)
	}

	all, err := svc.ListPayrolls(ctx, acct)
	if err != nil {
		t.Fatalf("accountant list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("accountant sees %d payrolls, want 2", len(all))
	}

	if _, err := svc.ListPayrolls(ctx, manager()); err != nil {
		t.Errorf("manager list: %v", err)
	}
}
