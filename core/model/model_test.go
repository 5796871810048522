package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSeries() PriceSeries {
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	s := make(PriceSeries, HorizonDays)
	for i := range s {
		s[i] = PricePoint{DayIndex: i, Date: start.AddDate(0, 0, i), Price: 25}
	}
	return s
}

func TestPriceSeriesValidate(t *testing.T) {
	require.NoError(t, fullSeries().Validate())
}

func TestPriceSeriesValidateLength(t *testing.T) {
	s := fullSeries()
	assert.Error(t, s[:100].Validate())
}

func TestPriceSeriesValidateIndexGap(t *testing.T) {
	s := fullSeries()
	s[10].DayIndex = 12
	assert.Error(t, s.Validate())
}

func TestPriceSeriesValidatePrices(t *testing.T) {
	s := fullSeries()
	s[3].Price = math.NaN()
	assert.Error(t, s.Validate())

	s = fullSeries()
	s[3].Price = -1
	assert.Error(t, s.Validate())
}

func TestPriceSeriesValidateDates(t *testing.T) {
	s := fullSeries()
	s[200].Date = s[200].Date.AddDate(0, 0, 5)
	assert.Error(t, s.Validate())
}

func TestFacilityDefaultsValid(t *testing.T) {
	assert.NoError(t, DefaultFacility().Validate())
}

func TestFacilitySetDefaults(t *testing.T) {
	f := Facility{WGV: 500_000}
	f.SetDefaults()
	assert.Equal(t, 500_000.0, f.WGV)
	assert.Equal(t, DefaultFacility().MaxInjectionRate, f.MaxInjectionRate)
	assert.Equal(t, DefaultFacility().VariableCostRate, f.VariableCostRate)
}

func TestFacilityValidate(t *testing.T) {
	cases := map[string]func(*Facility){
		"zero wgv":          func(f *Facility) { f.WGV = 0 },
		"negative rate":     func(f *Facility) { f.MaxWithdrawalRate = -1 },
		"threshold above 1": func(f *Facility) { f.InjectionThreshold = 1.5 },
		"zero regime":       func(f *Facility) { f.InjectionSecondHalf = 0 },
		"factor order":      func(f *Facility) { f.WithdrawalMinFactor = 1.2 },
		"negative cost":     func(f *Facility) { f.VariableCostRate = -0.01 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := DefaultFacility()
			mutate(&f)
			assert.Error(t, f.Validate())
		})
	}
}

func TestPlanStorageHelpers(t *testing.T) {
	p := Plan{
		{DayIndex: 0, Storage: 100},
		{DayIndex: 1, Storage: 300},
		{DayIndex: 2, Storage: 250},
	}
	assert.Equal(t, 250.0, p.FinalStorage())
	assert.Equal(t, 300.0, p.PeakStorage())
	assert.Equal(t, 0.0, Plan{}.FinalStorage())
}
