package metrics

import "github.com/shopspring/decimal"

type LoanInput struct {
	Principal        float64
	Installments     int
	InstallmentsPaid int
}

type LoanDerived struct {
	InstallmentValue float64
	Outstanding      float64
}

// Loan derives the per-installment value and the outstanding balance.
func Loan(in LoanInput) (LoanDerived, error) {
	if in.Principal <= 0 {
		return LoanDerived{}, ErrNonPositivePrincipal
	}
	if in.Installments < 1 {
		return LoanDerived{}, ErrNonPositiveInstallmts
	}
	if in.InstallmentsPaid < 0 || in.InstallmentsPaid > in.Installments {
		return LoanDerived{}, ErrInstallmentsExceeded
	}

	principal := decimal.NewFromFloat(in.Principal)
	installment := round2(principal.Div(decimal.NewFromInt(int64(in.Installments))))
	outstanding := round2(principal.Sub(installment.Mul(decimal.NewFromInt(int64(in.InstallmentsPaid)))))
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return LoanDerived{
		InstallmentValue: toFloat(installment),
		Outstanding:      toFloat(outstanding),
	}, nil
}
