package models

// Granularity is the aggregation window of a weight series.
type Granularity string

const (
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// Series is a labeled weight series. Labels and Values are positionally
// aligned; a nil value is a gap, not zero.
type Series struct {
	Granularity Granularity `json:"granularity" yaml:"granularity"`
	Labels      []string    `json:"labels" yaml:"labels"`
	Values      []*float64  `json:"values" yaml:"values"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// Range returns the smallest and largest present values. ok is false when
// the series has no values at all.
func (s Series) Range() (lo, hi float64, ok bool) {
	for _, v := range s.Values {
		if v == nil {
			continue
		}
		if !ok {
			lo, hi, ok = *v, *v, true
			continue
		}
		if *v < lo {
			lo = *v
		}
		if *v > hi {
			hi = *v
		}
	}
	return lo, hi, ok
}
