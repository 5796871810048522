package config

import (
	"fmt"

	"github.com/gastrade/ugs-auction/core/strategy"
)

// BidConfig controls the auction bid derivation.
type BidConfig struct {
	// Fraction is the share of intrinsic value offered at auction.
	Fraction float64 `json:"fraction"`
}

// SetDefaults applies the reference bid fraction.
func (c *BidConfig) SetDefaults() {
	if c.Fraction == 0 {
		c.Fraction = strategy.DefaultBidFraction
	}
}

// Validate checks the fraction range.
func (c BidConfig) Validate() error {
	if c.Fraction < 0 || c.Fraction > 1 {
		return fmt.Errorf("fraction %f outside [0,1]", c.Fraction)
	}
	return nil
}
