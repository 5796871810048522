package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/gastrade/ugs-auction/core/model"
	"github.com/gastrade/ugs-auction/infra/logger"
)

// InfluxSink writes run results to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing database never blocks a
// run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) ResultSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordRun writes the run summary as a single point.
func (s *InfluxSink) RecordRun(rec RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("optimization_run").
		AddTag("run_id", rec.RunID).
		AddTag("engine", rec.Engine).
		AddTag("status", rec.Status).
		AddField("objective", round3(rec.Objective)).
		AddField("solve_seconds", round3(rec.SolveSeconds)).
		AddField("bid_per_mwh", round3(rec.BidPerMWh)).
		AddField("bid_total", round3(rec.BidTotal)).
		AddField("expected_profit", round3(rec.ExpectedProfit)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlan writes one point per delivery day.
func (s *InfluxSink) RecordPlan(runID string, plan model.Plan) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, r := range plan {
		p := write.NewPointWithMeasurement("storage_plan").
			AddTag("run_id", runID).
			AddField("price", round3(r.Price)).
			AddField("inject", round3(r.Inject)).
			AddField("withdraw", round3(r.Withdraw)).
			AddField("storage", round3(r.Storage)).
			SetTime(r.Date)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
