package optimizer

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrade/ugs-auction/core/model"
)

// smallFacility keeps solver tests on short horizons fast while exercising
// both injection regimes.
func smallFacility() model.Facility {
	return model.Facility{
		WGV:                 100,
		MaxInjectionRate:    20,
		MaxWithdrawalRate:   30,
		InjectionThreshold:  0.5,
		InjectionFirstHalf:  1.0,
		InjectionSecondHalf: 0.7,
		WithdrawalMinFactor: 0.4,
		WithdrawalMaxFactor: 1.0,
		VariableCostRate:    0.012,
	}
}

func seriesFromPrices(prices []float64) model.PriceSeries {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.PriceSeries, len(prices))
	for i, p := range prices {
		s[i] = model.PricePoint{DayIndex: i, Date: start.AddDate(0, 0, i), Price: p}
	}
	return s
}

// checkPhysical asserts the balance recurrence and every physical bound the
// schedule must honor.
func checkPhysical(t *testing.T, plan model.Plan, f model.Facility) {
	t.Helper()
	prev := 0.0
	for _, r := range plan {
		assert.GreaterOrEqual(t, r.Inject, 0.0, "day %d inject", r.DayIndex)
		assert.GreaterOrEqual(t, r.Withdraw, 0.0, "day %d withdraw", r.DayIndex)
		assert.GreaterOrEqual(t, r.Storage, -1e-6, "day %d storage floor", r.DayIndex)
		assert.LessOrEqual(t, r.Storage, f.WGV+1e-6, "day %d storage cap", r.DayIndex)
		assert.InDelta(t, prev+r.Inject-r.Withdraw, r.Storage, 1e-6*(1+f.WGV), "day %d balance", r.DayIndex)
		assert.LessOrEqual(t, r.Withdraw, prev+1e-6, "day %d withdraw stock", r.DayIndex)
		assert.LessOrEqual(t, r.Inject, f.WGV-prev+1e-6, "day %d inject headroom", r.DayIndex)
		prev = r.Storage
	}
}

func TestOptimizeRejectsShortSeries(t *testing.T) {
	o := New(model.DefaultFacility(), Options{}, nil)
	res, err := o.Optimize(context.Background(), seriesFromPrices([]float64{10, 20, 30}))
	require.Error(t, err)
	assert.Equal(t, StatusSolverError, res.Status)
}

func TestOptimizeRejectsBadFacility(t *testing.T) {
	fac := model.DefaultFacility()
	fac.InjectionThreshold = 2
	prices := make([]float64, model.HorizonDays)
	for i := range prices {
		prices[i] = 25
	}
	o := New(fac, Options{}, nil)
	res, err := o.Optimize(context.Background(), seriesFromPrices(prices))
	require.Error(t, err)
	assert.Equal(t, StatusSolverError, res.Status)
}

func TestOptimizeUnknownEngine(t *testing.T) {
	prices := make([]float64, model.HorizonDays)
	for i := range prices {
		prices[i] = 25
	}
	o := New(model.DefaultFacility(), Options{Engine: "annealing"}, nil)
	res, err := o.Optimize(context.Background(), seriesFromPrices(prices))
	require.Error(t, err)
	assert.Equal(t, StatusSolverError, res.Status)
}

func TestBuildModelShape(t *testing.T) {
	m, vars := buildModel([]float64{10, 20, 30}, smallFacility())
	assert.Equal(t, 15, m.NumVars())
	assert.Equal(t, 24, m.NumConstraints())
	assert.Len(t, vars.storage, 3)
}

func TestSimplexTwoWindowSchedule(t *testing.T) {
	fac := smallFacility()
	series := seriesFromPrices([]float64{10, 10, 10, 10, 50, 50, 50, 50})
	o := New(fac, Options{Engine: EngineSimplex}, nil)

	res, err := o.run(context.Background(), series)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	checkPhysical(t, res.Plan, fac)
	assert.Greater(t, res.Objective, 0.0)

	for _, r := range res.Plan {
		if r.DayIndex >= 4 {
			assert.InDelta(t, 0, r.Inject, 1e-6, "day %d inject in expensive window", r.DayIndex)
		} else {
			assert.InDelta(t, 0, r.Withdraw, 1e-6, "day %d withdraw in cheap window", r.DayIndex)
		}
	}
}

func TestSimplexFlatCurveNoRoundTrips(t *testing.T) {
	fac := smallFacility()
	series := seriesFromPrices([]float64{25, 25, 25, 25, 25, 25})
	o := New(fac, Options{Engine: EngineSimplex}, nil)

	res, err := o.run(context.Background(), series)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	assert.InDelta(t, 0, res.Objective, 1e-6)
	for _, r := range res.Plan {
		assert.False(t, r.Inject > 1e-6 && r.Withdraw > 1e-6,
			"day %d injects and withdraws with no spread to pay for it", r.DayIndex)
	}
}

func TestSimplexObjectiveMonotoneInInjectionRate(t *testing.T) {
	series := seriesFromPrices([]float64{10, 10, 10, 40, 40, 40})

	solveWith := func(rate float64) float64 {
		fac := smallFacility()
		fac.MaxInjectionRate = rate
		res, err := New(fac, Options{Engine: EngineSimplex}, nil).run(context.Background(), series)
		require.NoError(t, err)
		require.Equal(t, StatusOptimal, res.Status)
		return res.Objective
	}

	assert.GreaterOrEqual(t, solveWith(20), solveWith(10)-1e-6)
}

func TestGridMatchesSimplexOnAlignedProblem(t *testing.T) {
	fac := smallFacility()
	// Constant rate curves keep the optimum on the grid.
	fac.InjectionSecondHalf = 1.0
	fac.WithdrawalMinFactor = 1.0
	series := seriesFromPrices([]float64{10, 10, 10, 40, 40, 40})

	simplex, err := New(fac, Options{Engine: EngineSimplex}, nil).run(context.Background(), series)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, simplex.Status)

	grid, err := New(fac, Options{Engine: EngineGrid, GridSteps: 10}, nil).run(context.Background(), series)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, grid.Status)

	// Fill 60 over three cheap days, sell it all at 40.
	want := 60*40 - 60*10*(1+fac.VariableCostRate)
	assert.InDelta(t, want, simplex.Objective, 1e-6)
	assert.InDelta(t, want, grid.Objective, 1e-6)
	checkPhysical(t, grid.Plan, fac)
}

func TestGridFullYearSeasonalSpread(t *testing.T) {
	fac := model.DefaultFacility()
	prices := make([]float64, model.HorizonDays)
	for i := range prices {
		// Rising half-cosine: cheap spring, expensive late winter.
		prices[i] = 30 - 10*math.Cos(math.Pi*float64(i)/float64(model.HorizonDays-1))
	}
	series := seriesFromPrices(prices)

	o := New(fac, Options{Engine: EngineGrid}, nil)
	res, err := o.Optimize(context.Background(), series)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	require.Len(t, res.Plan, model.HorizonDays)
	checkPhysical(t, res.Plan, fac)
	assert.Greater(t, res.Objective, 0.0)

	var injected, withdrawn float64
	for _, r := range res.Plan {
		injected += r.Inject
		withdrawn += r.Withdraw
		if r.DayIndex < 200 {
			assert.InDelta(t, 0, r.Withdraw, 1e-6, "day %d sells into a rising curve", r.DayIndex)
		}
		if r.DayIndex >= 150 && r.DayIndex <= 250 {
			assert.InDelta(t, 0, r.Inject, 1e-6, "day %d injects with the reservoir committed", r.DayIndex)
		}
	}
	assert.Greater(t, injected, 0.0)
	assert.Greater(t, withdrawn, 0.0)
}

func TestSimplexTimeout(t *testing.T) {
	fac := smallFacility()
	series := seriesFromPrices([]float64{10, 10, 10, 10, 50, 50, 50, 50})
	o := New(fac, Options{Engine: EngineSimplex}, nil)

	res, err := o.run(timeoutCtx(t), series)
	require.Error(t, err)
	assert.Equal(t, StatusSolverError, res.Status)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func timeoutCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	t.Cleanup(cancel)
	return ctx
}
