// Package strategy turns a solved schedule into an auction bid and summary
// statistics. It consumes optimal outcomes only; anything else is a caller
// error, not something to paper over with an empty plan.
package strategy

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/gastrade/ugs-auction/core/model"
	"github.com/gastrade/ugs-auction/core/optimizer"
)

// DefaultBidFraction is the share of intrinsic value offered at auction.
const DefaultBidFraction = 0.8

// zeroFlow is the threshold below which a daily flow counts as zero when
// classifying injection, withdrawal and hold days.
const zeroFlow = 1e-9

// Summary aggregates the physical side of the plan.
type Summary struct {
	TotalInjected       float64 `json:"total_injected"`
	TotalWithdrawn      float64 `json:"total_withdrawn"`
	PeakStorage         float64 `json:"peak_storage"`
	FinalStorage        float64 `json:"final_storage"`
	InjectionDays       int     `json:"injection_days"`
	WithdrawalDays      int     `json:"withdrawal_days"`
	HoldDays            int     `json:"hold_days"`
	CapacityUtilization float64 `json:"capacity_utilization"` // peak storage / wgv
}

// Report is the bid derived from an optimal schedule.
type Report struct {
	IntrinsicValue       float64 `json:"intrinsic_value"`
	IntrinsicValuePerMWh float64 `json:"intrinsic_value_per_mwh"`
	BidFraction          float64 `json:"bid_fraction"`
	BidPerMWh            float64 `json:"bid_per_mwh"`
	BidTotal             float64 `json:"bid_total"`
	ExpectedProfit       float64 `json:"expected_profit"`
	ExpectedProfitPerMWh float64 `json:"expected_profit_per_mwh"`
	Summary              Summary `json:"summary"`
}

// Derive computes the auction bid and plan summary from an optimal solve.
// It is a pure function of the result and fails on any non-optimal status.
func Derive(res optimizer.Result, fac model.Facility, bidFraction float64) (Report, error) {
	if res.Status != optimizer.StatusOptimal {
		return Report{}, fmt.Errorf("cannot derive a bid from a %s outcome", res.Status)
	}
	if bidFraction < 0 || bidFraction > 1 {
		return Report{}, fmt.Errorf("bid fraction %f outside [0,1]", bidFraction)
	}
	if fac.WGV <= 0 {
		return Report{}, fmt.Errorf("working gas volume must be positive")
	}

	intrinsic := res.Objective
	perMWh := intrinsic / fac.WGV
	bidPerMWh := perMWh * bidFraction
	bidTotal := bidPerMWh * fac.WGV
	expected := intrinsic - bidTotal

	return Report{
		IntrinsicValue:       intrinsic,
		IntrinsicValuePerMWh: perMWh,
		BidFraction:          bidFraction,
		BidPerMWh:            bidPerMWh,
		BidTotal:             bidTotal,
		ExpectedProfit:       expected,
		ExpectedProfitPerMWh: expected / fac.WGV,
		Summary:              summarize(res.Plan, fac),
	}, nil
}

func summarize(plan model.Plan, fac model.Facility) Summary {
	injects := make([]float64, len(plan))
	withdraws := make([]float64, len(plan))
	s := Summary{}
	for i, r := range plan {
		injects[i] = r.Inject
		withdraws[i] = r.Withdraw
		switch {
		case r.Inject > zeroFlow && r.Withdraw > zeroFlow:
			// A same-day round trip counts on both sides.
			s.InjectionDays++
			s.WithdrawalDays++
		case r.Inject > zeroFlow:
			s.InjectionDays++
		case r.Withdraw > zeroFlow:
			s.WithdrawalDays++
		default:
			s.HoldDays++
		}
	}
	s.TotalInjected = floats.Sum(injects)
	s.TotalWithdrawn = floats.Sum(withdraws)
	s.PeakStorage = plan.PeakStorage()
	s.FinalStorage = plan.FinalStorage()
	s.CapacityUtilization = s.PeakStorage / fac.WGV
	return s
}
