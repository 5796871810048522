package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrade/ugs-auction/config"
	"github.com/gastrade/ugs-auction/core/optimizer"
)

// writeSeasonalCurve writes a 365-day curve rising from cheap spring to an
// expensive late winter.
func writeSeasonalCurve(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,price\n")
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		price := 20 + 20*float64(i)/364
		fmt.Fprintf(&b, "%s,%.3f\n", start.AddDate(0, 0, i).Format("02/01/2006"), price)
	}
	path := filepath.Join(dir, "curve.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestServiceRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	curvePath := writeSeasonalCurve(t, dir)

	cfg := config.Default()
	cfg.Solver.Engine = optimizer.EngineGrid
	cfg.Output.Dir = filepath.Join(dir, "results")
	cfg.Output.Formats = []string{config.FormatCSV, config.FormatJSON, config.FormatPNG}

	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	require.NoError(t, svc.Run(context.Background(), curvePath))

	for _, name := range []string{"ugs_plan.csv", "ugs_plan.json", "ugs_plan.png"} {
		info, err := os.Stat(filepath.Join(cfg.Output.Dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestServiceRunMissingCurve(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	svc, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, svc.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv")))
}

func TestServiceRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Bid.Fraction = 2
	_, err := New(cfg)
	assert.Error(t, err)
}
