package metrics

import "github.com/shopspring/decimal"

// IESSRate is the statutory personal social-security contribution.
// It is fixed by law, not per record.
const IESSRate = 0.0945

var iessRate = decimal.NewFromFloat(IESSRate)

type PayrollInput struct {
	BasePay        float64
	HarvestBonus   float64
	SpecialTaskPay float64
	Fines          float64
	LoanDeductions float64
}

type PayrollDerived struct {
	Gross           float64
	IESS            float64
	TotalDeductions float64
	NetPay          float64
}

// Payroll derives the gross, the IESS deduction, the deduction total
// and the net pay, each rounded to cents.
func Payroll(in PayrollInput) PayrollDerived {
	gross := round2(decimal.NewFromFloat(in.BasePay).
		Add(decimal.NewFromFloat(in.HarvestBonus)).
		Add(decimal.NewFromFloat(in.SpecialTaskPay)))
	iess := round2(gross.Mul(iessRate))
	total := round2(iess.
		Add(decimal.NewFromFloat(in.Fines)).
		Add(decimal.NewFromFloat(in.LoanDeductions)))
	net := round2(gross.Sub(total))

	return PayrollDerived{
		Gross:           toFloat(gross),
		IESS:            toFloat(iess),
		TotalDeductions: toFloat(total),
		NetPay:          toFloat(net),
	}
}

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
