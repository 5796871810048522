// Package optimizer computes the profit-maximal annual injection/withdrawal
// schedule for a storage facility against a daily forward curve.
package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/gastrade/ugs-auction/core/model"
	"github.com/gastrade/ugs-auction/infra/logger"
)

// Status classifies the outcome of a solve.
type Status int

const (
	// StatusOptimal means a proven-optimal schedule was found.
	StatusOptimal Status = iota
	// StatusInfeasible means no schedule satisfies the constraints.
	StatusInfeasible
	// StatusUnbounded means the profit grows without limit, which points at
	// a parameter misconfiguration rather than a market opportunity.
	StatusUnbounded
	// StatusSolverError covers malformed input, engine failures, timeouts
	// and exhausted search budgets.
	StatusSolverError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusSolverError:
		return "solver_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Optimize call. Plan and Objective are only
// meaningful when Status is StatusOptimal; callers must branch on Status
// before using them.
type Result struct {
	Status    Status
	Objective float64
	Plan      model.Plan
}

// Engine names accepted by Options.
const (
	EngineSimplex = "simplex"
	EngineGrid    = "grid"
)

// Options tune the solve without touching the facility physics.
type Options struct {
	// Engine selects the solve strategy: EngineSimplex (exact
	// branch-and-bound over simplex relaxations, the default) or EngineGrid
	// (dynamic programming over a discretized storage grid).
	Engine string
	// Timeout bounds the solve; zero means no limit beyond the caller's
	// context.
	Timeout time.Duration
	// MaxNodes bounds the branch-and-bound search. Zero means the engine
	// default.
	MaxNodes int
	// Tolerance is the simplex convergence tolerance. Zero means the engine
	// default.
	Tolerance float64
	// GridSteps is the storage discretization of the grid engine. Zero
	// means the engine default.
	GridSteps int
}

// Optimizer runs schedule solves for one facility. It holds no state across
// calls; concurrent Optimize calls are independent.
type Optimizer struct {
	fac  model.Facility
	opts Options
	log  logger.Logger
}

// New returns an Optimizer for the given facility.
func New(fac model.Facility, opts Options, log logger.Logger) *Optimizer {
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.Engine == "" {
		opts.Engine = EngineSimplex
	}
	return &Optimizer{fac: fac, opts: opts, log: log}
}

// Optimize builds and solves the scheduling problem for the given curve.
// Malformed input is reported as StatusSolverError without invoking the
// engine. Infeasible and unbounded outcomes are legitimate business results
// and carry a nil error.
func (o *Optimizer) Optimize(ctx context.Context, series model.PriceSeries) (Result, error) {
	if err := series.Validate(); err != nil {
		return Result{Status: StatusSolverError}, fmt.Errorf("price series: %w", err)
	}
	if err := o.fac.Validate(); err != nil {
		return Result{Status: StatusSolverError}, fmt.Errorf("facility parameters: %w", err)
	}

	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := o.run(ctx, series)
	if err != nil {
		o.log.Errorf("solve failed after %s: %v", time.Since(start), err)
		return res, err
	}
	o.log.Infof("solve finished: status=%s objective=%.2f elapsed=%s engine=%s",
		res.Status, res.Objective, time.Since(start), o.opts.Engine)
	return res, nil
}

// run dispatches to the configured engine. It is the horizon-agnostic entry
// point the engine tests drive directly.
func (o *Optimizer) run(ctx context.Context, series model.PriceSeries) (Result, error) {
	prices := series.Prices()
	var (
		sched schedule
		obj   float64
		st    Status
		err   error
	)
	switch o.opts.Engine {
	case EngineSimplex:
		st, obj, sched, err = solveSimplex(ctx, prices, o.fac, o.opts)
	case EngineGrid:
		st, obj, sched, err = solveGrid(ctx, prices, o.fac, o.opts)
	default:
		return Result{Status: StatusSolverError}, fmt.Errorf("unknown engine %q", o.opts.Engine)
	}
	if err != nil {
		return Result{Status: StatusSolverError}, err
	}
	if st != StatusOptimal {
		return Result{Status: st}, nil
	}
	return Result{Status: StatusOptimal, Objective: obj, Plan: buildPlan(series, sched)}, nil
}

// schedule carries the day-indexed decisions of a solved model.
type schedule struct {
	inject   []float64
	withdraw []float64
	storage  []float64
}

func buildPlan(series model.PriceSeries, sched schedule) model.Plan {
	plan := make(model.Plan, len(series))
	for i, p := range series {
		plan[i] = model.PlanRow{
			DayIndex: p.DayIndex,
			Date:     p.Date,
			Price:    p.Price,
			Inject:   sched.inject[i],
			Withdraw: sched.withdraw[i],
			Storage:  sched.storage[i],
		}
	}
	return plan
}
