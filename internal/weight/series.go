package weight

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/utils"
)

// ErrInvalidGranularity is returned for granularities other than weekly, monthly and yearly.
var ErrInvalidGranularity = errors.New("invalid granularity")

// ParseGranularity maps user input to a granularity.
func ParseGranularity(s string) (models.Granularity, error) {
	switch g := models.Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case models.GranularityWeekly, models.GranularityMonthly, models.GranularityYearly:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q (valid: weekly, monthly, yearly)", ErrInvalidGranularity, s)
}

// Builder derives gap-filled weight series relative to the current time.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using now as its clock. A nil now uses time.Now.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build returns the series for granularity g around reference.
func (b *Builder) Build(g models.Granularity, reference time.Time, weights models.Weights) (models.Series, error) {
	return BuildAt(g, reference, b.now(), weights)
}

// BuildAt is Build with an explicit current time. The reference date is read
// in now's location.
func BuildAt(g models.Granularity, reference, now time.Time, weights models.Weights) (models.Series, error) {
	today := utils.Midnight(now)
	ref := utils.Midnight(reference.In(now.Location()))
	keys := sortedKeys(weights)

	series := models.Series{
		Granularity: g,
		Labels:      []string{},
		Values:      []*float64{},
	}

	switch g {
	case models.GranularityWeekly:
		start := today.AddDate(0, 0, -6)
		cutoff := now.AddDate(0, 0, -7)
		daily(&series, start, today, keys, weights, func(d time.Time) string {
			if d.After(cutoff) {
				return d.Weekday().String()[:3]
			}
			return fmt.Sprintf("%02d", d.Day())
		})

	case models.GranularityMonthly:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, today.Location())
		end := start.AddDate(0, 1, -1)
		if end.After(today) {
			end = today
		}
		daily(&series, start, end, keys, weights, func(d time.Time) string {
			return fmt.Sprintf("%02d", d.Day())
		})

	case models.GranularityYearly:
		yearly(&series, ref.Year(), today, keys, weights)

	default:
		return models.Series{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	return series, nil
}

// daily walks start..end inclusive, carrying the last known sample forward.
// Nothing is emitted when start is after end.
func daily(series *models.Series, start, end time.Time, keys []string, weights models.Weights, label func(time.Time) string) {
	startKey := utils.DateKey(start)

	var lastKnown *float64
	for _, k := range keys {
		if k >= startKey {
			break
		}
		lastKnown = value(weights[k])
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if w, ok := weights[utils.DateKey(d)]; ok {
			lastKnown = value(w)
		}
		series.Labels = append(series.Labels, label(d))
		series.Values = append(series.Values, lastKnown)
	}
}

// yearly emits one monthly mean per month of year. Months without samples
// carry the previous mean forward; months starting after today are gaps.
func yearly(series *models.Series, year int, today time.Time, keys []string, weights models.Weights) {
	var lastKnown *float64
	sums := make([]float64, 12)
	counts := make([]int, 12)

	for _, k := range keys {
		d, err := time.Parse(constants.DateFormat, k)
		if err != nil {
			continue
		}
		switch {
		case d.Year() < year:
			lastKnown = value(weights[k])
		case d.Year() == year:
			sums[d.Month()-1] += weights[k]
			counts[d.Month()-1]++
		}
	}

	for m := time.January; m <= time.December; m++ {
		series.Labels = append(series.Labels, m.String()[:3])

		if counts[m-1] > 0 {
			lastKnown = value(sums[m-1] / float64(counts[m-1]))
		}

		monthStart := time.Date(year, m, 1, 0, 0, 0, 0, today.Location())
		if monthStart.After(today) {
			series.Values = append(series.Values, nil)
			continue
		}
		series.Values = append(series.Values, lastKnown)
	}
}

// sortedKeys returns the canonical date keys of weights in ascending order.
func sortedKeys(weights models.Weights) []string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		if utils.IsDateKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func value(v float64) *float64 {
	return &v
}
