// Package export writes the solved schedule to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gastrade/ugs-auction/core/model"
)

// dateLayout matches the forward-curve input format.
const dateLayout = "02/01/2006"

// WriteJSON writes the plan to w in JSON format.
func WriteJSON(w io.Writer, plan model.Plan) error {
	enc := json.NewEncoder(w)
	return enc.Encode(plan)
}

// WriteCSV writes the plan to w with two derived columns: gain_loss, the
// day's cash flow including the injection cost markup, and storage_change,
// the day-over-day inventory delta (day zero's delta is its own level, the
// reservoir starting empty).
func WriteCSV(w io.Writer, plan model.Plan, fac model.Facility) error {
	cw := csv.NewWriter(w)
	header := []string{"day_index", "date", "price", "inject", "withdraw", "storage", "gain_loss", "storage_change"}
	if err := cw.Write(header); err != nil {
		return err
	}
	prev := 0.0
	for _, r := range plan {
		gainLoss := r.Withdraw*r.Price - r.Inject*r.Price*(1+fac.VariableCostRate)
		rec := []string{
			strconv.Itoa(r.DayIndex),
			r.Date.Format(dateLayout),
			formatFloat(r.Price),
			formatFloat(r.Inject),
			formatFloat(r.Withdraw),
			formatFloat(r.Storage),
			formatFloat(gainLoss),
			formatFloat(r.Storage - prev),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
		prev = r.Storage
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
