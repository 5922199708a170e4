package table

import "time"

// Summary provides aggregate statistics over a table, as shown next to the chart.
type Summary struct {
	// Records is the number of rows.
	Records int `json:"records" yaml:"records"`

	// Start and End are the earliest and latest timestamps.
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`

	// AvgLow and AvgHigh bound the avg column.
	AvgLow  float64 `json:"avg_low" yaml:"avg_low"`
	AvgHigh float64 `json:"avg_high" yaml:"avg_high"`

	// MinValue is the smallest value in the min column.
	MinValue float64 `json:"min_value" yaml:"min_value"`

	// MaxValue is the largest value in the max column.
	MaxValue float64 `json:"max_value" yaml:"max_value"`
}

// Summary computes summary statistics. An empty table yields a zero Summary.
func (t *Table) Summary() Summary {
	if t.Empty() {
		return Summary{}
	}

	first := t.Rows[0]
	s := Summary{
		Records:  len(t.Rows),
		Start:    first.Timestamp,
		End:      first.Timestamp,
		AvgLow:   first.Avg,
		AvgHigh:  first.Avg,
		MinValue: first.Min,
		MaxValue: first.Max,
	}

	for _, r := range t.Rows[1:] {
		if r.Timestamp.Before(s.Start) {
			s.Start = r.Timestamp
		}
		if r.Timestamp.After(s.End) {
			s.End = r.Timestamp
		}
		s.AvgLow = min(s.AvgLow, r.Avg)
		s.AvgHigh = max(s.AvgHigh, r.Avg)
		s.MinValue = min(s.MinValue, r.Min)
		s.MaxValue = max(s.MaxValue, r.Max)
	}

	return s
}
