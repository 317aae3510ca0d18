package metrics

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 0.01

func almostEqual(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestHarvestDerivation(t *testing.T) {
	got, err := Harvest(HarvestInput{BunchesCut: 1000, BunchesRejected: 50, BoxesProduced: 840})
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got.BunchesRecovered != 950 {
		t.Errorf("recovered = %d, want 950", got.BunchesRecovered)
	}
	if !almostEqual(got.Ratio, 840.0/950.0) {
		t.Errorf("ratio = %v, want %v", got.Ratio, 840.0/950.0)
	}
	if !almostEqual(got.WastePct, 5.0) {
		t.Errorf("waste = %v, want 5.0", got.WastePct)
	}
}

func TestHarvestZeroDenominators(t *testing.T) {
	got, err := Harvest(HarvestInput{})
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got.Ratio != 0 || got.WastePct != 0 || got.BunchesRecovered != 0 {
		t.Errorf("zero input must derive zeros, got %+v", got)
	}

	// All bunches rejected: recovered is zero, ratio stays zero.
	got, err = Harvest(HarvestInput{BunchesCut: 10, BunchesRejected: 10, BoxesProduced: 3})
	if err != nil {
		t.Fatalf("Harvest returned error: %v", err)
	}
	if got.Ratio != 0 {
		t.Errorf("ratio = %v, want 0 when nothing recovered", got.Ratio)
	}
	if !almostEqual(got.WastePct, 100) {
		t.Errorf("waste = %v, want 100", got.WastePct)
	}
}

func TestHarvestRejectsInvalid(t *testing.T) {
	_, err := Harvest(HarvestInput{BunchesCut: 10, BunchesRejected: 11})
	if !errors.Is(err, ErrRejectedExceedsCut) {
		t.Fatalf("err = %v, want ErrRejectedExceedsCut", err)
	}
}

func TestHarvestIdempotent(t *testing.T) {
	in := HarvestInput{BunchesCut: 777, BunchesRejected: 31, BoxesProduced: 612}
	first, err := Harvest(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Harvest(in)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("recomputation changed output: %+v vs %+v", first, second)
	}
}

func TestPayrollDerivation(t *testing.T) {
	got := Payroll(PayrollInput{BasePay: 150, HarvestBonus: 50, SpecialTaskPay: 20})
	if !almostEqual(got.Gross, 220) {
		t.Errorf("gross = %v, want 220", got.Gross)
	}
	if !almostEqual(got.IESS, 20.79) {
		t.Errorf("iess = %v, want 20.79", got.IESS)
	}
	if !almostEqual(got.TotalDeductions, 20.79) {
		t.Errorf("total deductions = %v, want 20.79", got.TotalDeductions)
	}
	if !almostEqual(got.NetPay, 199.21) {
		t.Errorf("net = %v, want 199.21", got.NetPay)
	}
}

func TestPayrollIdentities(t *testing.T) {
	inputs := []PayrollInput{
		{BasePay: 150, HarvestBonus: 50, SpecialTaskPay: 20},
		{BasePay: 87.33, HarvestBonus: 12.5, SpecialTaskPay: 0, Fines: 4, LoanDeductions: 25},
		{BasePay: 0},
		{BasePay: 1234.56, Fines: 0.01, LoanDeductions: 99.99},
	}
	for _, in := range inputs {
		got := Payroll(in)
		if !almostEqual(got.Gross-got.TotalDeductions, got.NetPay) {
			t.Errorf("%+v: gross-total != net (%v - %v != %v)", in, got.Gross, got.TotalDeductions, got.NetPay)
		}
		if !almostEqual(got.IESS, got.Gross*IESSRate) {
			t.Errorf("%+v: iess = %v, want gross*rate = %v", in, got.IESS, got.Gross*IESSRate)
		}
		if Payroll(in) != got {
			t.Errorf("%+v: recomputation not idempotent", in)
		}
	}
}

func TestLoanDerivation(t *testing.T) {
	got, err := Loan(LoanInput{Principal: 500, Installments: 10})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got.InstallmentValue, 50) {
		t.Errorf("installment = %v, want 50", got.InstallmentValue)
	}
	if !almostEqual(got.Outstanding, 500) {
		t.Errorf("outstanding = %v, want 500", got.Outstanding)
	}

	got, err = Loan(LoanInput{Principal: 500, Installments: 10, InstallmentsPaid: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got.Outstanding, 350) {
		t.Errorf("outstanding = %v, want 350", got.Outstanding)
	}
}

func TestLoanIdentity(t *testing.T) {
	cases := []LoanInput{
		{Principal: 500, Installments: 10, InstallmentsPaid: 3},
		{Principal: 100, Installments: 3, InstallmentsPaid: 1},
		{Principal: 333.33, Installments: 7, InstallmentsPaid: 7},
	}
	for _, in := range cases {
		got, err := Loan(in)
		if err != nil {
			t.Fatalf("%+v: %v", in, err)
		}
		// installment * count reconstructs the principal within rounding.
		if math.Abs(got.InstallmentValue*float64(in.Installments)-in.Principal) > float64(in.Installments)*0.01 {
			t.Errorf("%+v: installment*count = %v, want ~%v", in, got.InstallmentValue*float64(in.Installments), in.Principal)
		}
		want := in.Principal - float64(in.InstallmentsPaid)*got.InstallmentValue
		if want < 0 {
			want = 0
		}
		if !almostEqual(got.Outstanding, want) {
			t.Errorf("%+v: outstanding = %v, want %v", in, got.Outstanding, want)
		}
	}
}

func TestLoanRejectsInvalid(t *testing.T) {
	if _, err := Loan(LoanInput{Principal: 500, Installments: 10, InstallmentsPaid: 11}); !errors.Is(err, ErrInstallmentsExceeded) {
		t.Errorf("paid > count: err = %v, want ErrInstallmentsExceeded", err)
	}
	if _, err := Loan(LoanInput{Principal: 0, Installments: 10}); !errors.Is(err, ErrNonPositivePrincipal) {
		t.Errorf("zero principal: err = %v, want ErrNonPositivePrincipal", err)
	}
	if _, err := Loan(LoanInput{Principal: 10, Installments: 0}); !errors.Is(err, ErrNonPositiveInstallmts) {
		t.Errorf("zero installments: err = %v, want ErrNonPositiveInstallmts", err)
	}
}

func TestTapeRecoveryPct(t *testing.T) {
	if got := TapeRecoveryPct(0, 1, 2, 3, 4); got != 0 {
		t.Errorf("zero initial bags must derive 0, got %v", got)
	}
	if got := TapeRecoveryPct(200, 50, 60, 40, 30); !almostEqual(got, 90) {
		t.Errorf("recovery = %v, want 90", got)
	}
}
