package model

import "time"

// PlanRow is the solved decision for one delivery day.
type PlanRow struct {
	DayIndex int       `json:"day_index"`
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
	Inject   float64   `json:"inject"`
	Withdraw float64   `json:"withdraw"`
	Storage  float64   `json:"storage"`
}

// Plan is the materialized annual schedule, one row per day. It is handed
// off by value and must not be mutated by consumers; derived columns are the
// exporter's business.
type Plan []PlanRow

// FinalStorage returns the inventory at the end of the horizon.
func (p Plan) FinalStorage() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Storage
}

// PeakStorage returns the highest inventory reached over the horizon.
func (p Plan) PeakStorage() float64 {
	peak := 0.0
	for _, r := range p {
		if r.Storage > peak {
			peak = r.Storage
		}
	}
	return peak
}
