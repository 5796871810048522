package config

import (
	"fmt"
	"slices"
)

// Output formats understood by the pipeline.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// OutputConfig controls where and how the plan is written.
type OutputConfig struct {
	// Dir is the directory receiving plan artifacts.
	Dir string `json:"dir"`
	// Formats lists the artifacts to produce: csv, json, png.
	Formats []string `json:"formats"`
}

// SetDefaults writes CSV and a chart into ./results.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "results"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{FormatCSV, FormatPNG}
	}
}

// Validate rejects unknown formats.
func (c OutputConfig) Validate() error {
	for _, f := range c.Formats {
		switch f {
		case FormatCSV, FormatJSON, FormatPNG:
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	return nil
}

// Wants reports whether the given format was requested.
func (c OutputConfig) Wants(format string) bool {
	return slices.Contains(c.Formats, format)
}
