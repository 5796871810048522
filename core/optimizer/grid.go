package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/gastrade/ugs-auction/core/model"
)

const defaultGridSteps = 400

// solveGrid runs dynamic programming over a discretized storage grid. Every
// grid level is an admissible inventory, transitions honor the same
// state-dependent rate curves as the mixed-integer program, and the
// resulting schedule satisfies the balance recurrence exactly. The optimum
// is exact on the grid and approaches the continuous optimum as the step
// shrinks; it is the practical engine for full-year horizons, where dense
// simplex relaxations become too large.
func solveGrid(ctx context.Context, prices []float64, f model.Facility, opts Options) (Status, float64, schedule, error) {
	steps := opts.GridSteps
	if steps <= 0 {
		steps = defaultGridSteps
	}
	T := len(prices)
	stepSize := f.WGV / float64(steps)
	threshold := f.InjectionThreshold * f.WGV

	injCeil := func(prev float64) float64 {
		rate := f.MaxInjectionRate * f.InjectionSecondHalf
		if prev < threshold {
			rate = f.MaxInjectionRate * f.InjectionFirstHalf
		}
		return math.Min(rate, f.WGV-prev)
	}
	wdCeil := func(prev float64) float64 {
		rate := f.MaxWithdrawalRate * (f.WithdrawalMinFactor +
			(f.WithdrawalMaxFactor-f.WithdrawalMinFactor)*prev/f.WGV)
		return math.Min(rate, prev)
	}

	// value[i] is the best profit reaching inventory i*stepSize after the
	// current day; parent remembers the previous level for reconstruction.
	value := make([]float64, steps+1)
	for i := range value {
		value[i] = math.Inf(-1)
	}
	value[0] = 0
	parents := make([][]int32, T)

	for t := 0; t < T; t++ {
		if err := ctx.Err(); err != nil {
			return StatusSolverError, 0, schedule{}, fmt.Errorf("grid solve interrupted: %w", err)
		}
		next := make([]float64, steps+1)
		for i := range next {
			next[i] = math.Inf(-1)
		}
		parent := make([]int32, steps+1)
		for i := range parent {
			parent[i] = -1
		}

		for j := 0; j <= steps; j++ {
			if math.IsInf(value[j], -1) {
				continue
			}
			prev := float64(j) * stepSize
			up := int((injCeil(prev) + 1e-9) / stepSize)
			down := int((wdCeil(prev) + 1e-9) / stepSize)
			for i := j - down; i <= j+up; i++ {
				if i < 0 || i > steps {
					continue
				}
				delta := float64(i-j) * stepSize
				var gain float64
				if delta > 0 {
					gain = -delta * prices[t] * (1 + f.VariableCostRate)
				} else {
					gain = -delta * prices[t]
				}
				if cand := value[j] + gain; cand > next[i] {
					next[i] = cand
					parent[i] = int32(j)
				}
			}
		}
		value = next
		parents[t] = parent
	}

	bestLevel, bestValue := 0, math.Inf(-1)
	for i, v := range value {
		if v > bestValue {
			bestValue = v
			bestLevel = i
		}
	}

	levels := make([]int, T)
	for t, l := T-1, int32(bestLevel); t >= 0; t-- {
		levels[t] = int(l)
		l = parents[t][l]
	}

	sched := schedule{
		inject:   make([]float64, T),
		withdraw: make([]float64, T),
		storage:  make([]float64, T),
	}
	prevLevel := 0
	for t := 0; t < T; t++ {
		delta := float64(levels[t]-prevLevel) * stepSize
		if delta > 0 {
			sched.inject[t] = delta
		} else {
			sched.withdraw[t] = -delta
		}
		sched.storage[t] = float64(levels[t]) * stepSize
		prevLevel = levels[t]
	}
	return StatusOptimal, bestValue, sched, nil
}
