package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/fitlog/internal/constants"
)

// WorkoutEntry is one logged session on a date
type WorkoutEntry struct {
	Category constants.Category `json:"type" yaml:"type"`
	Notes    string             `json:"notes" yaml:"notes"`
}

// Calories returns the estimated calories for the entry's category.
func (w WorkoutEntry) Calories() int {
	return w.Category.Calories()
}

// IsPeriod reports whether the entry tracks a period day rather than exercise.
func (w WorkoutEntry) IsPeriod() bool {
	return w.Category == constants.CategoryPeriod
}

// Workouts maps a YYYY-MM-DD date to its entries in insertion order.
type Workouts map[string][]WorkoutEntry

// ParseCategory resolves user input such as "leg day", "leg-day" or "walk" to a category.
func ParseCategory(s string) (constants.Category, error) {
	norm := normalizeCategoryName(s)
	for _, c := range constants.Categories {
		if normalizeCategoryName(string(c)) == norm {
			return c, nil
		}
	}

	switch norm {
	case "legs", "leg":
		return constants.CategoryLegDay, nil
	case "upper":
		return constants.CategoryUpperBody, nil
	case "walk", "10k":
		return constants.CategoryWalk10k, nil
	case "bike":
		return constants.CategoryCycling, nil
	}

	return "", fmt.Errorf("unknown category %q (valid: %s)", s, categoryList())
}

var categoryNameReplacer = strings.NewReplacer(" ", "", "-", "", "_", "", "(", "", ")", "")

func normalizeCategoryName(s string) string {
	return categoryNameReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func categoryList() string {
	names := make([]string, len(constants.Categories))
	for i, c := range constants.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
