// Package curve loads and validates the daily forward curve consumed by the
// optimizer.
package curve

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gastrade/ugs-auction/core/model"
)

// DateLayout is the curve file date format, day first.
const DateLayout = "02/01/2006"

// Load reads a forward curve CSV from disk.
func Load(path string) (model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curve: %w", err)
	}
	defer f.Close()
	series, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("curve %s: %w", path, err)
	}
	return series, nil
}

// Read parses a forward curve from r. The file must carry a header with
// `date` and `price` columns, dates in DD/MM/YYYY, and exactly 365
// consecutive rows running from 1 April to 31 March of the following year.
func Read(r io.Reader) (model.PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dateCol, priceCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "price":
			priceCol = i
		}
	}
	if dateCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("curve must contain date and price columns, got %v", header)
	}

	var series model.PriceSeries
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(series)+2, err)
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", len(series)+2, rec[dateCol], err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec[priceCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", len(series)+2, rec[priceCol], err)
		}
		series = append(series, model.PricePoint{DayIndex: len(series), Date: date, Price: price})
	}

	if err := checkWindow(series); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// checkWindow verifies the storage-year coverage: first row on 1 April,
// last row on 31 March of the following year. Row count and day-to-day
// continuity are the series' own invariants.
func checkWindow(series model.PriceSeries) error {
	if len(series) == 0 {
		return fmt.Errorf("curve is empty")
	}
	first := series[0].Date
	if first.Day() != 1 || first.Month() != time.April {
		return fmt.Errorf("curve must start on 1 April, got %s", first.Format(DateLayout))
	}
	last := series[len(series)-1].Date
	if last.Day() != 31 || last.Month() != time.March || last.Year() != first.Year()+1 {
		return fmt.Errorf("curve must end on 31 March %d, got %s", first.Year()+1, last.Format(DateLayout))
	}
	return nil
}
