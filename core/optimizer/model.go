package optimizer

import (
	"fmt"
	"math"

	"github.com/gastrade/ugs-auction/core/model"
	"github.com/gastrade/ugs-auction/internal/milp"
)

// modelVars indexes the decision variables of the built program by day.
type modelVars struct {
	inject    []milp.Var
	withdraw  []milp.Var
	storage   []milp.Var
	fill      []milp.Var
	firstHalf []milp.Var
}

// buildModel assembles the mixed-integer program for the storage schedule.
//
// Per day t the decisions are inject[t], withdraw[t] >= 0 and storage[t] in
// [0, wgv], tied together by the balance recurrence with an implicit empty
// reservoir before day 0. The injection ceiling depends on which side of the
// fill threshold yesterday's storage sat on; that two-regime step is
// linearized with a binary indicator and big-M rows, M = 2*wgv being a safe
// bound on |storage[t-1] - threshold*wgv|. The withdrawal ceiling scales
// linearly with yesterday's fill fraction, introduced as an auxiliary
// variable linked by fill[t]*wgv = storage[t-1] so the program stays linear.
func buildModel(prices []float64, f model.Facility) (*milp.Model, modelVars) {
	T := len(prices)
	m := milp.New(milp.Maximize)
	vars := modelVars{
		inject:    make([]milp.Var, T),
		withdraw:  make([]milp.Var, T),
		storage:   make([]milp.Var, T),
		fill:      make([]milp.Var, T),
		firstHalf: make([]milp.Var, T),
	}

	for t := 0; t < T; t++ {
		vars.inject[t] = m.AddVar(0, math.Inf(1), fmt.Sprintf("inject_%d", t))
		vars.withdraw[t] = m.AddVar(0, math.Inf(1), fmt.Sprintf("withdraw_%d", t))
		vars.storage[t] = m.AddVar(0, f.WGV, fmt.Sprintf("storage_%d", t))
		vars.fill[t] = m.AddVar(0, 1, fmt.Sprintf("fill_%d", t))
		vars.firstHalf[t] = m.AddBinary(fmt.Sprintf("first_half_%d", t))
	}

	for t := 0; t < T; t++ {
		m.SetObjective(vars.withdraw[t], prices[t])
		m.SetObjective(vars.inject[t], -prices[t]*(1+f.VariableCostRate))
	}

	bigM := 2 * f.WGV
	threshold := f.InjectionThreshold * f.WGV

	for t := 0; t < T; t++ {
		// prevTerms is storage[t-1] as a linear expression; empty before
		// day 0. An explicit initial inventory would be added here.
		var prevTerms []milp.Term
		if t > 0 {
			prevTerms = []milp.Term{{Var: vars.storage[t-1], Coef: 1}}
		}

		// storage[t] = storage[t-1] + inject[t] - withdraw[t]
		balance := append([]milp.Term{
			{Var: vars.storage[t], Coef: 1},
			{Var: vars.inject[t], Coef: -1},
			{Var: vars.withdraw[t], Coef: 1},
		}, negate(prevTerms)...)
		m.AddConstraint(fmt.Sprintf("balance_%d", t), milp.EQ, 0, balance...)

		// storage[t-1] - threshold <= M*(1 - firstHalf[t])
		m.AddConstraint(fmt.Sprintf("regime_upper_%d", t), milp.LE, bigM+threshold,
			append([]milp.Term{{Var: vars.firstHalf[t], Coef: bigM}}, prevTerms...)...)
		// storage[t-1] - threshold >= -M*firstHalf[t]
		m.AddConstraint(fmt.Sprintf("regime_lower_%d", t), milp.GE, threshold,
			append([]milp.Term{{Var: vars.firstHalf[t], Coef: bigM}}, prevTerms...)...)

		// inject[t] <= maxInj*(firstHalf*f1 + (1-firstHalf)*f2)
		m.AddConstraint(fmt.Sprintf("inject_rate_%d", t), milp.LE,
			f.MaxInjectionRate*f.InjectionSecondHalf,
			milp.Term{Var: vars.inject[t], Coef: 1},
			milp.Term{Var: vars.firstHalf[t], Coef: f.MaxInjectionRate * (f.InjectionSecondHalf - f.InjectionFirstHalf)})

		// inject[t] <= wgv - storage[t-1]
		m.AddConstraint(fmt.Sprintf("inject_headroom_%d", t), milp.LE, f.WGV,
			append([]milp.Term{{Var: vars.inject[t], Coef: 1}}, prevTerms...)...)

		// fill[t]*wgv = storage[t-1]
		m.AddConstraint(fmt.Sprintf("fill_link_%d", t), milp.EQ, 0,
			append([]milp.Term{{Var: vars.fill[t], Coef: f.WGV}}, negate(prevTerms)...)...)

		// withdraw[t] <= maxWd*(minF + (maxF-minF)*fill[t])
		m.AddConstraint(fmt.Sprintf("withdraw_rate_%d", t), milp.LE,
			f.MaxWithdrawalRate*f.WithdrawalMinFactor,
			milp.Term{Var: vars.withdraw[t], Coef: 1},
			milp.Term{Var: vars.fill[t], Coef: -f.MaxWithdrawalRate * (f.WithdrawalMaxFactor - f.WithdrawalMinFactor)})

		// withdraw[t] <= storage[t-1]
		m.AddConstraint(fmt.Sprintf("withdraw_stock_%d", t), milp.LE, 0,
			append([]milp.Term{{Var: vars.withdraw[t], Coef: 1}}, negate(prevTerms)...)...)
	}

	return m, vars
}

func negate(terms []milp.Term) []milp.Term {
	out := make([]milp.Term, len(terms))
	for i, t := range terms {
		out[i] = milp.Term{Var: t.Var, Coef: -t.Coef}
	}
	return out
}
