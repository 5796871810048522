package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/gastrade/ugs-auction/core/model"
)

// PushSink pushes run gauges to a Prometheus Pushgateway. A single-shot
// batch has nothing for a scraper to pull, so push is the natural fit.
type PushSink struct {
	url string
	job string
}

// NewPushSink creates a sink targeting the given Pushgateway URL.
func NewPushSink(url, job string) *PushSink {
	if job == "" {
		job = "ugs_auction"
	}
	return &PushSink{url: url, job: job}
}

// RecordRun pushes the run summary, grouped by run ID so successive runs
// stay distinguishable on the gateway.
func (s *PushSink) RecordRun(rec RunRecord) error {
	objective := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ugs_intrinsic_value_eur",
		Help: "Objective value of the optimal schedule.",
	})
	solve := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ugs_solve_seconds",
		Help: "Wall-clock duration of the solve.",
	})
	bid := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ugs_bid_total_eur",
		Help: "Total auction bid derived from the schedule.",
	})
	profit := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ugs_expected_profit_eur",
		Help: "Expected profit after the bid is paid.",
	})
	objective.Set(rec.Objective)
	solve.Set(rec.SolveSeconds)
	bid.Set(rec.BidTotal)
	profit.Set(rec.ExpectedProfit)

	return push.New(s.url, s.job).
		Collector(objective).
		Collector(solve).
		Collector(bid).
		Collector(profit).
		Grouping("run_id", rec.RunID).
		Grouping("engine", rec.Engine).
		Grouping("status", rec.Status).
		Push()
}

// RecordPlan is a no-op; a 365-point series is not gauge material.
func (s *PushSink) RecordPlan(string, model.Plan) error { return nil }

// Close is a no-op; pushes are connectionless.
func (s *PushSink) Close() error { return nil }
