package models

import "time"

// ActivitySummary is the per-month activity breakdown
type ActivitySummary struct {
	Year          int        `json:"year" yaml:"year"`
	Month         time.Month `json:"month" yaml:"month"`
	DaysInMonth   int        `json:"days_in_month" yaml:"days_in_month"`
	ActiveDays    int        `json:"active_days" yaml:"active_days"`
	PeriodDays    int        `json:"period_days" yaml:"period_days"`
	InactiveDays  int        `json:"inactive_days" yaml:"inactive_days"`
	TotalCalories int        `json:"total_calories" yaml:"total_calories"`
}
