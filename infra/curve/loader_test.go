package curve

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrade/ugs-auction/core/model"
)

func buildCurve(start time.Time, days int) string {
	var b strings.Builder
	b.WriteString("date,price\n")
	for i := 0; i < days; i++ {
		fmt.Fprintf(&b, "%s,%.2f\n", start.AddDate(0, 0, i).Format(DateLayout), 20+float64(i%10))
	}
	return b.String()
}

func TestReadValidCurve(t *testing.T) {
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	series, err := Read(strings.NewReader(buildCurve(start, 365)))
	require.NoError(t, err)
	require.Len(t, series, model.HorizonDays)
	assert.Equal(t, 0, series[0].DayIndex)
	assert.Equal(t, start, series[0].Date)
	assert.Equal(t, time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC), series[364].Date)
	require.NoError(t, series.Validate())
}

func TestReadRejectsWrongStart(t *testing.T) {
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	_, err := Read(strings.NewReader(buildCurve(start, 365)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 April")
}

func TestReadRejectsShortCurve(t *testing.T) {
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, err := Read(strings.NewReader(buildCurve(start, 100)))
	assert.Error(t, err)
}

func TestReadRejectsBadDate(t *testing.T) {
	data := "date,price\n2026-04-01,20\n"
	_, err := Read(strings.NewReader(data))
	assert.Error(t, err)
}

func TestReadRejectsBadPrice(t *testing.T) {
	data := "date,price\n01/04/2026,twenty\n"
	_, err := Read(strings.NewReader(data))
	assert.Error(t, err)
}

func TestReadRejectsMissingColumns(t *testing.T) {
	data := "day,value\n01/04/2026,20\n"
	_, err := Read(strings.NewReader(data))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.csv")
	assert.Error(t, err)
}
