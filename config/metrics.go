package config

import "fmt"

// MetricsConfig wires optional result sinks.
type MetricsConfig struct {
	Influx      InfluxConfig `json:"influx"`
	Pushgateway PushConfig   `json:"pushgateway"`
}

// InfluxConfig targets an InfluxDB bucket for run and plan points.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// PushConfig targets a Prometheus Pushgateway for run gauges.
type PushConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Job     string `json:"job"`
}

// SetDefaults fills the push job name.
func (c *MetricsConfig) SetDefaults() {
	if c.Pushgateway.Job == "" {
		c.Pushgateway.Job = "ugs_auction"
	}
}

// Validate checks that enabled sinks carry endpoints.
func (c MetricsConfig) Validate() error {
	if c.Influx.Enabled && c.Influx.URL == "" {
		return fmt.Errorf("influx enabled without url")
	}
	if c.Pushgateway.Enabled && c.Pushgateway.URL == "" {
		return fmt.Errorf("pushgateway enabled without url")
	}
	return nil
}
