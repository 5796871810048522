package plot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrade/ugs-auction/core/model"
)

func TestRenderWritesPNG(t *testing.T) {
	day := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	plan := model.Plan{
		{DayIndex: 0, Date: day, Price: 20, Inject: 50, Storage: 50},
		{DayIndex: 1, Date: day.AddDate(0, 0, 1), Price: 25, Storage: 50},
		{DayIndex: 2, Date: day.AddDate(0, 0, 2), Price: 40, Withdraw: 30, Storage: 20},
	}
	fac := model.Facility{WGV: 100}

	path := filepath.Join(t.TempDir(), "plan.png")
	require.NoError(t, Render(path, plan, fac))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}
