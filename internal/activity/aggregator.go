package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/utils"
)

// ErrInvalidMonth is returned for months outside January..December.
var ErrInvalidMonth = errors.New("invalid month")

// Classification of a single day.
type DayKind int

const (
	DayInactive DayKind = iota
	DayActive
	DayPeriod
)

// Classify returns the kind of a day from its entries. Any exercise entry
// makes the day active, even alongside a period entry.
func Classify(entries []models.WorkoutEntry) DayKind {
	kind := DayInactive
	for _, e := range entries {
		if !e.IsPeriod() {
			return DayActive
		}
		kind = DayPeriod
	}
	return kind
}

// Aggregate summarizes the given month of workouts.
func Aggregate(year int, month time.Month, workouts models.Workouts) (models.ActivitySummary, error) {
	if month < time.January || month > time.December {
		return models.ActivitySummary{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	summary := models.ActivitySummary{
		Year:        year,
		Month:       month,
		DaysInMonth: utils.DaysInMonth(year, month),
	}

	for day := 1; day <= summary.DaysInMonth; day++ {
		key := utils.DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		entries := workouts[key]

		switch Classify(entries) {
		case DayActive:
			summary.ActiveDays++
		case DayPeriod:
			summary.PeriodDays++
		}

		for _, e := range entries {
			summary.TotalCalories += e.Calories()
		}
	}

	summary.InactiveDays = summary.DaysInMonth - summary.ActiveDays - summary.PeriodDays
	return summary, nil
}
