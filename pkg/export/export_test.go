package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrade/ugs-auction/core/model"
)

func testPlan() model.Plan {
	day := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	return model.Plan{
		{DayIndex: 0, Date: day, Price: 10, Inject: 20, Storage: 20},
		{DayIndex: 1, Date: day.AddDate(0, 0, 1), Price: 10, Inject: 10, Storage: 30},
		{DayIndex: 2, Date: day.AddDate(0, 0, 2), Price: 50, Withdraw: 30, Storage: 0},
	}
}

func TestWriteCSV(t *testing.T) {
	fac := model.Facility{WGV: 100, VariableCostRate: 0.012}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testPlan(), fac))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"day_index", "date", "price", "inject", "withdraw", "storage", "gain_loss", "storage_change"}, rows[0])
	assert.Equal(t, "01/04/2026", rows[1][1])

	// Day 0: pure injection, storage change equals the level itself.
	gain, err := strconv.ParseFloat(rows[1][6], 64)
	require.NoError(t, err)
	assert.InDelta(t, -20*10*1.012, gain, 1e-9)
	change, err := strconv.ParseFloat(rows[1][7], 64)
	require.NoError(t, err)
	assert.InDelta(t, 20, change, 1e-9)

	// Day 2: pure withdrawal.
	gain, err = strconv.ParseFloat(rows[3][6], 64)
	require.NoError(t, err)
	assert.InDelta(t, 30*50, gain, 1e-9)
	change, err = strconv.ParseFloat(rows[3][7], 64)
	require.NoError(t, err)
	assert.InDelta(t, -30, change, 1e-9)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testPlan()))

	var decoded model.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, 2, decoded[2].DayIndex)
	assert.InDelta(t, 30.0, decoded[2].Withdraw, 1e-9)
}
