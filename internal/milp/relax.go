package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInfeasible indicates the linear relaxation admits no solution.
var ErrInfeasible = errors.New("milp: infeasible")

// ErrUnbounded indicates the objective can be improved without limit.
var ErrUnbounded = errors.New("milp: unbounded")

// relax solves the linear relaxation of the model with the given variables
// pinned to fixed values, returning a full value vector indexed by Var.
//
// The relaxation is assembled in simplex standard form directly: every
// variable is shifted by its lower bound so that all columns are
// nonnegative, finite upper bounds become slack rows, and inequality
// constraints gain slack or surplus columns. lp.Convert is not needed
// because no variable is free after the shift.
func (m *Model) relax(fixed map[Var]float64, tol float64) ([]float64, error) {
	n := len(m.obj)

	effLo := make([]float64, n)
	effHi := make([]float64, n)
	col := make([]int, n)
	nCols := 0
	for i := 0; i < n; i++ {
		if v, ok := fixed[Var(i)]; ok {
			effLo[i], effHi[i] = v, v
		} else {
			effLo[i], effHi[i] = m.lo[i], m.hi[i]
		}
		if effHi[i] > effLo[i] {
			col[i] = nCols
			nCols++
		} else {
			col[i] = -1
		}
	}

	// First pass: count rows and slack columns.
	nRows, nSlacks := 0, 0
	active := make([]bool, len(m.cons))
	for ci, c := range m.cons {
		hasCol := false
		for _, t := range c.terms {
			if col[t.Var] >= 0 && t.Coef != 0 {
				hasCol = true
				break
			}
		}
		active[ci] = hasCol
		if !hasCol {
			// Fully fixed row: check it instead of solving it.
			var lhs float64
			for _, t := range c.terms {
				lhs += t.Coef * effLo[t.Var]
			}
			feasTol := 1e-6 * (1 + math.Abs(c.rhs))
			switch c.op {
			case LE:
				if lhs > c.rhs+feasTol {
					return nil, ErrInfeasible
				}
			case GE:
				if lhs < c.rhs-feasTol {
					return nil, ErrInfeasible
				}
			case EQ:
				if math.Abs(lhs-c.rhs) > feasTol {
					return nil, ErrInfeasible
				}
			}
			continue
		}
		nRows++
		if c.op != EQ {
			nSlacks++
		}
	}
	for i := 0; i < n; i++ {
		if col[i] >= 0 && !math.IsInf(effHi[i], 1) {
			nRows++
			nSlacks++
		}
	}
	if nCols == 0 {
		// Everything pinned; the constant point is the solution.
		vals := make([]float64, n)
		copy(vals, effLo)
		return vals, nil
	}

	a := mat.NewDense(nRows, nCols+nSlacks, nil)
	b := make([]float64, nRows)
	c := make([]float64, nCols+nSlacks)
	for i := 0; i < n; i++ {
		if col[i] >= 0 {
			if m.sense == Maximize {
				c[col[i]] = -m.obj[i]
			} else {
				c[col[i]] = m.obj[i]
			}
		}
	}

	row, slack := 0, nCols
	for ci, cons := range m.cons {
		if !active[ci] {
			continue
		}
		rhs := cons.rhs
		for _, t := range cons.terms {
			if col[t.Var] >= 0 {
				a.Set(row, col[t.Var], a.At(row, col[t.Var])+t.Coef)
				rhs -= t.Coef * effLo[t.Var] // bound shift
			} else {
				rhs -= t.Coef * effLo[t.Var] // pinned value
			}
		}
		switch cons.op {
		case LE:
			a.Set(row, slack, 1)
			slack++
		case GE:
			a.Set(row, slack, -1)
			slack++
		}
		b[row] = rhs
		row++
	}
	for i := 0; i < n; i++ {
		if col[i] < 0 || math.IsInf(effHi[i], 1) {
			continue
		}
		a.Set(row, col[i], 1)
		a.Set(row, slack, 1)
		b[row] = effHi[i] - effLo[i]
		slack++
		row++
	}

	// Normalize negative right-hand sides; rows are equalities so the sign
	// flip is free and keeps phase one well behaved.
	for r := 0; r < nRows; r++ {
		if b[r] < 0 {
			b[r] = -b[r]
			for j := 0; j < nCols+nSlacks; j++ {
				a.Set(r, j, -a.At(r, j))
			}
		}
	}

	_, x, err := lp.Simplex(c, a, b, tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return nil, ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return nil, ErrUnbounded
	case err != nil:
		return nil, fmt.Errorf("milp: simplex: %w", err)
	}

	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		if col[i] < 0 {
			vals[i] = effLo[i]
			continue
		}
		v := effLo[i] + x[col[i]]
		if v < effLo[i] {
			v = effLo[i]
		}
		if v > effHi[i] {
			v = effHi[i]
		}
		vals[i] = v
	}
	return vals, nil
}
