// Package app wires the pipeline: curve loading, optimization, bid
// derivation and result publication.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gastrade/ugs-auction/config"
	"github.com/gastrade/ugs-auction/core/optimizer"
	"github.com/gastrade/ugs-auction/core/strategy"
	"github.com/gastrade/ugs-auction/infra/curve"
	"github.com/gastrade/ugs-auction/infra/logger"
	"github.com/gastrade/ugs-auction/infra/metrics"
	"github.com/gastrade/ugs-auction/infra/plot"
	"github.com/gastrade/ugs-auction/pkg/export"
)

// Service runs the auction pipeline for one configuration.
type Service struct {
	cfg  *config.Config
	opt  *optimizer.Optimizer
	sink metrics.ResultSink
	log  logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logg := logger.New("service")

	var sinks []metrics.ResultSink
	if cfg.Metrics.Influx.Enabled {
		in := cfg.Metrics.Influx
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(in.URL, in.Token, in.Org, in.Bucket))
	}
	if cfg.Metrics.Pushgateway.Enabled {
		sinks = append(sinks, metrics.NewPushSink(cfg.Metrics.Pushgateway.URL, cfg.Metrics.Pushgateway.Job))
	}
	var sink metrics.ResultSink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:  cfg,
		opt:  optimizer.New(cfg.Facility, cfg.Solver.Options(), logger.New("optimizer")),
		sink: sink,
		log:  logg,
	}, nil
}

// Close releases the sinks.
func (s *Service) Close() error { return s.sink.Close() }

// Run executes the pipeline on the given curve file. Any non-optimal solve
// stops the run; no artifact is written from a partial result.
func (s *Service) Run(ctx context.Context, curvePath string) error {
	series, err := curve.Load(curvePath)
	if err != nil {
		return err
	}
	s.log.Infof("loaded curve %s: %d days from %s", curvePath, len(series),
		series[0].Date.Format("2006-01-02"))

	runID := uuid.NewString()
	start := time.Now()
	res, err := s.opt.Optimize(ctx, series)
	solveSeconds := time.Since(start).Seconds()
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	if res.Status != optimizer.StatusOptimal {
		return fmt.Errorf("no usable schedule: solve ended %s", res.Status)
	}

	rep, err := strategy.Derive(res, s.cfg.Facility, s.cfg.Bid.Fraction)
	if err != nil {
		return fmt.Errorf("derive bid: %w", err)
	}
	s.log.Infof("run %s: intrinsic %.2f € (%.3f €/MWh), bid %.2f € (%.3f €/MWh), expected profit %.2f €",
		runID, rep.IntrinsicValue, rep.IntrinsicValuePerMWh, rep.BidTotal, rep.BidPerMWh, rep.ExpectedProfit)
	s.log.Infof("run %s: injected %.0f MWh over %d days, withdrawn %.0f MWh over %d days, %d hold days, peak %.0f MWh (%.1f%% of wgv)",
		runID, rep.Summary.TotalInjected, rep.Summary.InjectionDays,
		rep.Summary.TotalWithdrawn, rep.Summary.WithdrawalDays,
		rep.Summary.HoldDays, rep.Summary.PeakStorage, 100*rep.Summary.CapacityUtilization)

	if err := s.writeArtifacts(res, runID); err != nil {
		return err
	}

	rec := metrics.RunRecord{
		RunID:          runID,
		Time:           start,
		Engine:         s.cfg.Solver.Engine,
		Status:         res.Status.String(),
		Objective:      res.Objective,
		SolveSeconds:   solveSeconds,
		BidPerMWh:      rep.BidPerMWh,
		BidTotal:       rep.BidTotal,
		ExpectedProfit: rep.ExpectedProfit,
	}
	if err := s.sink.RecordRun(rec); err != nil {
		s.log.Errorf("record run: %v", err)
	}
	if err := s.sink.RecordPlan(runID, res.Plan); err != nil {
		s.log.Errorf("record plan: %v", err)
	}
	return nil
}

func (s *Service) writeArtifacts(res optimizer.Result, runID string) error {
	out := s.cfg.Output
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if out.Wants(config.FormatCSV) {
		path := filepath.Join(out.Dir, "ugs_plan.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := export.WriteCSV(f, res.Plan, s.cfg.Facility); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		s.log.Infof("run %s: plan saved to %s", runID, path)
	}
	if out.Wants(config.FormatJSON) {
		path := filepath.Join(out.Dir, "ugs_plan.json")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := export.WriteJSON(f, res.Plan); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		s.log.Infof("run %s: plan saved to %s", runID, path)
	}
	if out.Wants(config.FormatPNG) {
		path := filepath.Join(out.Dir, "ugs_plan.png")
		if err := plot.Render(path, res.Plan, s.cfg.Facility); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
		s.log.Infof("run %s: chart saved to %s", runID, path)
	}
	return nil
}
