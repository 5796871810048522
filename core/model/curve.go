package model

import (
	"fmt"
	"math"
	"time"
)

// HorizonDays is the length of the annual storage horizon.
const HorizonDays = 365

// PricePoint is one day of the forward curve.
type PricePoint struct {
	DayIndex int       // 0..364
	Date     time.Time // delivery day
	Price    float64   // €/MWh
}

// PriceSeries is the daily forward curve covering a full storage year.
type PriceSeries []PricePoint

// Validate checks the series invariants: exactly 365 entries, day indices
// 0..364 without gaps, finite non-negative prices and, when dates are set,
// consecutive calendar days.
func (s PriceSeries) Validate() error {
	if len(s) != HorizonDays {
		return fmt.Errorf("price series must have %d entries, got %d", HorizonDays, len(s))
	}
	for i, p := range s {
		if p.DayIndex != i {
			return fmt.Errorf("day index %d at position %d breaks the 0..%d sequence", p.DayIndex, i, HorizonDays-1)
		}
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("price on day %d is not finite", i)
		}
		if p.Price < 0 {
			return fmt.Errorf("price on day %d is negative: %f", i, p.Price)
		}
		if i > 0 && !s[i-1].Date.IsZero() && !p.Date.IsZero() {
			if !p.Date.Equal(s[i-1].Date.AddDate(0, 0, 1)) {
				return fmt.Errorf("date on day %d is not the day after day %d", i, i-1)
			}
		}
	}
	return nil
}

// Prices returns the raw price vector indexed by day.
func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price
	}
	return out
}
