package model

import "fmt"

// Facility describes the physical and commercial parameters of the storage
// site. All volumes are MWh, rates MWh/day, factors dimensionless.
type Facility struct {
	// WGV is the working gas volume, the usable capacity of the reservoir.
	WGV float64 `json:"wgv"`
	// MaxInjectionRate caps daily injection before regime factors apply.
	MaxInjectionRate float64 `json:"max_injection_rate"`
	// MaxWithdrawalRate caps daily withdrawal before fill-level scaling.
	MaxWithdrawalRate float64 `json:"max_withdrawal_rate"`
	// InjectionThreshold is the fill fraction separating the two injection
	// regimes.
	InjectionThreshold float64 `json:"injection_threshold"`
	// InjectionFirstHalf scales the injection rate below the threshold.
	InjectionFirstHalf float64 `json:"injection_first_half"`
	// InjectionSecondHalf scales the injection rate at or above the threshold.
	InjectionSecondHalf float64 `json:"injection_second_half"`
	// WithdrawalMinFactor scales the withdrawal rate with the reservoir empty.
	WithdrawalMinFactor float64 `json:"withdrawal_min_factor"`
	// WithdrawalMaxFactor scales the withdrawal rate with the reservoir full.
	WithdrawalMaxFactor float64 `json:"withdrawal_max_factor"`
	// VariableCostRate is the fractional markup on injection cost.
	VariableCostRate float64 `json:"variable_cost_rate"`
}

// DefaultFacility returns the reference parameter set for the auctioned site.
func DefaultFacility() Facility {
	return Facility{
		WGV:                 1_000_000,
		MaxInjectionRate:    20_000,
		MaxWithdrawalRate:   30_000,
		InjectionThreshold:  0.5,
		InjectionFirstHalf:  1.0,
		InjectionSecondHalf: 0.7,
		WithdrawalMinFactor: 0.4,
		WithdrawalMaxFactor: 1.0,
		VariableCostRate:    0.012,
	}
}

// SetDefaults fills zero-valued fields with the reference parameters.
func (f *Facility) SetDefaults() {
	def := DefaultFacility()
	if f.WGV == 0 {
		f.WGV = def.WGV
	}
	if f.MaxInjectionRate == 0 {
		f.MaxInjectionRate = def.MaxInjectionRate
	}
	if f.MaxWithdrawalRate == 0 {
		f.MaxWithdrawalRate = def.MaxWithdrawalRate
	}
	if f.InjectionThreshold == 0 {
		f.InjectionThreshold = def.InjectionThreshold
	}
	if f.InjectionFirstHalf == 0 {
		f.InjectionFirstHalf = def.InjectionFirstHalf
	}
	if f.InjectionSecondHalf == 0 {
		f.InjectionSecondHalf = def.InjectionSecondHalf
	}
	if f.WithdrawalMinFactor == 0 {
		f.WithdrawalMinFactor = def.WithdrawalMinFactor
	}
	if f.WithdrawalMaxFactor == 0 {
		f.WithdrawalMaxFactor = def.WithdrawalMaxFactor
	}
	if f.VariableCostRate == 0 {
		f.VariableCostRate = def.VariableCostRate
	}
}

// Validate checks that the parameter set describes a physically sound site.
func (f Facility) Validate() error {
	if f.WGV <= 0 {
		return fmt.Errorf("working gas volume must be positive")
	}
	if f.MaxInjectionRate <= 0 || f.MaxWithdrawalRate <= 0 {
		return fmt.Errorf("injection and withdrawal rates must be positive")
	}
	if f.InjectionThreshold < 0 || f.InjectionThreshold > 1 {
		return fmt.Errorf("injection threshold %f outside [0,1]", f.InjectionThreshold)
	}
	if f.InjectionFirstHalf <= 0 || f.InjectionSecondHalf <= 0 {
		return fmt.Errorf("injection regime factors must be positive")
	}
	if f.WithdrawalMinFactor < 0 || f.WithdrawalMaxFactor < 0 {
		return fmt.Errorf("withdrawal factors must be non-negative")
	}
	if f.WithdrawalMinFactor > f.WithdrawalMaxFactor {
		return fmt.Errorf("withdrawal min factor exceeds max factor")
	}
	if f.VariableCostRate < 0 {
		return fmt.Errorf("variable cost rate must be non-negative")
	}
	return nil
}
