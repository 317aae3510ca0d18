// Package metrics computes every derived field in the domain. All
// functions are pure and idempotent: identical inputs always produce
// identical outputs, and callers persist the result as-is.
package metrics

import "errors"

var (
	ErrRejectedExceedsCut    = errors.New("bunches rejected exceeds bunches cut")
	ErrInstallmentsExceeded  = errors.New("installments paid exceeds installment count")
	ErrNonPositivePrincipal  = errors.New("loan principal must be positive")
	ErrNonPositiveInstallmts = errors.New("installment count must be at least 1")
)

type HarvestInput struct {
	BunchesCut      int
	BunchesRejected int
	BoxesProduced   int
}

type HarvestDerived struct {
	BunchesRecovered int
	Ratio            float64
	WastePct         float64
}

// Harvest derives the recovered-bunch count, the box ratio and the
// waste percentage. Both ratios fall back to zero when their
// denominator is zero.
func Harvest(in HarvestInput) (HarvestDerived, error) {
	if in.BunchesRejected > in.BunchesCut {
		return HarvestDerived{}, ErrRejectedExceedsCut
	}
	out := HarvestDerived{
		BunchesRecovered: in.BunchesCut - in.BunchesRejected,
	}
	if out.BunchesRecovered > 0 {
		out.Ratio = float64(in.BoxesProduced) / float64(out.BunchesRecovered)
	}
	if in.BunchesCut > 0 {
		out.WastePct = float64(in.BunchesRejected) / float64(in.BunchesCut) * 100
	}
	return out, nil
}

// TapeRecoveryPct is the share of a week's bags recovered across the
// three calibration harvests and the final sweep.
func TapeRecoveryPct(initialBags, firstCal, secondCal, thirdCal, finalSweep int) float64 {
	if initialBags <= 0 {
		return 0
	}
	recovered := firstCal + secondCal + thirdCal + finalSweep
	return float64(recovered) / float64(initialBags) * 100
}
