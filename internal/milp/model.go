// Package milp provides a small mixed-integer linear programming layer on
// top of gonum's simplex solver: a model builder for continuous and binary
// variables with linear constraints, and a branch-and-bound Solve that works
// the binaries down to integrality.
package milp

import (
	"fmt"
	"math"
)

// Sense selects the optimization direction.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Op is a constraint comparison operator.
type Op int

const (
	LE Op = iota
	GE
	EQ
)

// Var identifies a variable within its model.
type Var int

// Term is one coefficient of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

type constraint struct {
	name  string
	terms []Term
	op    Op
	rhs   float64
}

// Model is a linear program under construction. It is not safe for
// concurrent mutation; build one model per solve.
type Model struct {
	sense  Sense
	obj    []float64
	lo, hi []float64
	binary []bool
	names  []string
	cons   []constraint
}

// New returns an empty model with the given optimization sense.
func New(sense Sense) *Model {
	return &Model{sense: sense}
}

// AddVar adds a continuous variable bounded to [lo, hi]. Use math.Inf(1)
// for an unbounded upper end.
func (m *Model) AddVar(lo, hi float64, name string) Var {
	m.obj = append(m.obj, 0)
	m.lo = append(m.lo, lo)
	m.hi = append(m.hi, hi)
	m.binary = append(m.binary, false)
	m.names = append(m.names, name)
	return Var(len(m.obj) - 1)
}

// AddBinary adds a {0,1} variable.
func (m *Model) AddBinary(name string) Var {
	v := m.AddVar(0, 1, name)
	m.binary[v] = true
	return v
}

// SetObjective sets the objective coefficient of v, replacing any previous
// value.
func (m *Model) SetObjective(v Var, coef float64) {
	m.obj[v] = coef
}

// AddConstraint adds a linear constraint Σ terms (op) rhs.
func (m *Model) AddConstraint(name string, op Op, rhs float64, terms ...Term) {
	m.cons = append(m.cons, constraint{name: name, terms: terms, op: op, rhs: rhs})
}

// NumVars reports how many variables the model holds.
func (m *Model) NumVars() int { return len(m.obj) }

// NumConstraints reports how many constraints the model holds.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Name returns the variable's name, for diagnostics.
func (m *Model) Name(v Var) string { return m.names[v] }

// objective evaluates the model objective at the given point, in the
// model's own sense.
func (m *Model) objective(vals []float64) float64 {
	var sum float64
	for i, c := range m.obj {
		sum += c * vals[i]
	}
	return sum
}

// validate catches builder misuse before the solver sees the model.
func (m *Model) validate() error {
	if len(m.obj) == 0 {
		return fmt.Errorf("milp: model has no variables")
	}
	for i := range m.obj {
		if m.hi[i] < m.lo[i] {
			return fmt.Errorf("milp: variable %s has empty domain [%g,%g]", m.names[i], m.lo[i], m.hi[i])
		}
		if math.IsInf(m.lo[i], -1) {
			return fmt.Errorf("milp: variable %s has no lower bound", m.names[i])
		}
	}
	for _, c := range m.cons {
		for _, t := range c.terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.obj) {
				return fmt.Errorf("milp: constraint %s references unknown variable", c.name)
			}
		}
	}
	return nil
}
