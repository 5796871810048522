package optimizer

import (
	"context"

	"github.com/gastrade/ugs-auction/core/model"
	"github.com/gastrade/ugs-auction/internal/milp"
)

// solveSimplex builds the mixed-integer program and works it to proven
// optimality with branch-and-bound over simplex relaxations.
func solveSimplex(ctx context.Context, prices []float64, f model.Facility, opts Options) (Status, float64, schedule, error) {
	m, vars := buildModel(prices, f)
	sol, err := milp.Solve(ctx, m, milp.Options{Tol: opts.Tolerance, MaxNodes: opts.MaxNodes})
	if err != nil {
		return StatusSolverError, 0, schedule{}, err
	}
	switch sol.Status {
	case milp.StatusInfeasible:
		return StatusInfeasible, 0, schedule{}, nil
	case milp.StatusUnbounded:
		return StatusUnbounded, 0, schedule{}, nil
	}

	T := len(prices)
	sched := schedule{
		inject:   make([]float64, T),
		withdraw: make([]float64, T),
		storage:  make([]float64, T),
	}
	for t := 0; t < T; t++ {
		sched.inject[t] = sol.Values[vars.inject[t]]
		sched.withdraw[t] = sol.Values[vars.withdraw[t]]
		sched.storage[t] = sol.Values[vars.storage[t]]
	}
	return StatusOptimal, sol.Objective, sched, nil
}
