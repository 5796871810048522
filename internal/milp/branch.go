package milp

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Status reports how a solve ended.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// ErrNodeLimit is returned when branch-and-bound exhausts its node budget
// before proving optimality.
var ErrNodeLimit = errors.New("milp: node limit exceeded")

// Solution is the result of a successful Solve.
type Solution struct {
	Status    Status
	Objective float64
	// Values holds one entry per model variable, indexed by Var.
	Values []float64
}

// Options tune the branch-and-bound search.
type Options struct {
	// Tol is the simplex convergence tolerance.
	Tol float64
	// IntTol is the integrality tolerance for binary variables.
	IntTol float64
	// MaxNodes bounds the number of explored nodes; zero means the default.
	MaxNodes int
}

func (o *Options) setDefaults() {
	if o.Tol == 0 {
		o.Tol = 1e-7
	}
	if o.IntTol == 0 {
		o.IntTol = 1e-6
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = 10_000
	}
}

// Solve runs branch-and-bound over the model's binary variables, solving a
// simplex relaxation per node. Infeasible and unbounded models are reported
// through Solution.Status; engine failures, cancellation and the node budget
// come back as errors.
func Solve(ctx context.Context, m *Model, opts Options) (Solution, error) {
	opts.setDefaults()
	if err := m.validate(); err != nil {
		return Solution{}, err
	}

	root := map[Var]float64{}
	vals, err := m.relax(root, opts.Tol)
	switch {
	case errors.Is(err, ErrInfeasible):
		return Solution{Status: StatusInfeasible}, nil
	case errors.Is(err, ErrUnbounded):
		return Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return Solution{}, err
	}
	if _, frac := m.mostFractional(vals, opts.IntTol); !frac {
		return m.solution(vals), nil
	}

	// Incumbent via rounding: pin every binary to its nearest integer and
	// resolve. A failure here only costs pruning power.
	best := math.Inf(1)
	var bestVals []float64
	if hv, herr := m.relax(m.roundBinaries(vals), opts.Tol); herr == nil {
		best = m.minimizeObjective(hv)
		bestVals = hv
	}

	branchVar, _ := m.mostFractional(vals, opts.IntTol)
	stack := children(root, branchVar, vals[branchVar])

	nodes := 1
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return Solution{}, fmt.Errorf("milp: solve interrupted: %w", err)
		}
		if nodes++; nodes > opts.MaxNodes {
			return Solution{}, ErrNodeLimit
		}

		fixed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		vals, err := m.relax(fixed, opts.Tol)
		switch {
		case errors.Is(err, ErrInfeasible):
			continue
		case errors.Is(err, ErrUnbounded):
			return Solution{Status: StatusUnbounded}, nil
		case err != nil:
			return Solution{}, err
		}
		obj := m.minimizeObjective(vals)
		if obj >= best-1e-9 {
			continue
		}
		v, frac := m.mostFractional(vals, opts.IntTol)
		if !frac {
			best = obj
			bestVals = vals
			continue
		}
		stack = append(stack, children(fixed, v, vals[v])...)
	}

	if bestVals == nil {
		return Solution{Status: StatusInfeasible}, nil
	}
	return m.solution(bestVals), nil
}

// children builds the two child fixings for a branch, ordered so the branch
// nearest the relaxed value is explored first (it sits on top of the LIFO
// stack).
func children(parent map[Var]float64, v Var, relaxed float64) []map[Var]float64 {
	near := math.Round(relaxed)
	mk := func(val float64) map[Var]float64 {
		fixed := make(map[Var]float64, len(parent)+1)
		for k, fv := range parent {
			fixed[k] = fv
		}
		fixed[v] = val
		return fixed
	}
	return []map[Var]float64{mk(1 - near), mk(near)}
}

// mostFractional returns the binary variable whose value strays furthest
// from an integer, and whether any strays beyond the tolerance.
func (m *Model) mostFractional(vals []float64, intTol float64) (Var, bool) {
	bestVar := Var(-1)
	bestDist := intTol
	for i, isBin := range m.binary {
		if !isBin {
			continue
		}
		d := math.Abs(vals[i] - math.Round(vals[i]))
		if d > bestDist {
			bestDist = d
			bestVar = Var(i)
		}
	}
	return bestVar, bestVar >= 0
}

// roundBinaries pins every binary to its nearest integer value.
func (m *Model) roundBinaries(vals []float64) map[Var]float64 {
	fixed := make(map[Var]float64)
	for i, isBin := range m.binary {
		if isBin {
			fixed[Var(i)] = math.Round(vals[i])
		}
	}
	return fixed
}

// minimizeObjective evaluates the objective in minimize sense, the sense
// branch-and-bound prunes in.
func (m *Model) minimizeObjective(vals []float64) float64 {
	obj := m.objective(vals)
	if m.sense == Maximize {
		return -obj
	}
	return obj
}

func (m *Model) solution(vals []float64) Solution {
	return Solution{Status: StatusOptimal, Objective: m.objective(vals), Values: vals}
}
