// Package metrics publishes optimization run results to external sinks.
package metrics

import (
	"math"
	"time"

	"github.com/gastrade/ugs-auction/core/model"
)

// RunRecord is the sink-facing summary of one optimization run.
type RunRecord struct {
	RunID          string
	Time           time.Time
	Engine         string
	Status         string
	Objective      float64
	SolveSeconds   float64
	BidPerMWh      float64
	BidTotal       float64
	ExpectedProfit float64
}

// ResultSink receives run summaries and, where the backend can hold a
// series, the daily plan.
type ResultSink interface {
	RecordRun(rec RunRecord) error
	RecordPlan(runID string, plan model.Plan) error
	Close() error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error            { return nil }
func (NopSink) RecordPlan(string, model.Plan) error  { return nil }
func (NopSink) Close() error                         { return nil }

// MultiSink fans records out to multiple sinks, returning the first error
// encountered.
type MultiSink struct {
	Sinks []ResultSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...ResultSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) RecordRun(rec RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordPlan(runID string, plan model.Plan) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(runID, plan); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
