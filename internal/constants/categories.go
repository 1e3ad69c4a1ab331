package constants

// Category is a workout category as persisted in the workouts document.
type Category string

const (
	CategoryLegDay    Category = "Leg Day"
	CategoryUpperBody Category = "Upper Body"
	CategoryCore      Category = "Core"
	CategoryYoga      Category = "Yoga"
	CategoryCycling   Category = "Cycling"
	CategoryBadminton Category = "Badminton"
	CategoryWalk10k   Category = "Walk (10k)"
	CategoryPeriod    Category = "Period"
	CategoryOther     Category = "Other"
)

// CategoryStyle holds the fixed per-category lookup values.
type CategoryStyle struct {
	Calories int    // estimated kcal per session (approx. 1 hour)
	Color    string // ANSI 256 color used by the terminal renderers
	Icon     string
}

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryLegDay,
	CategoryUpperBody,
	CategoryCore,
	CategoryYoga,
	CategoryCycling,
	CategoryBadminton,
	CategoryWalk10k,
	CategoryPeriod,
	CategoryOther,
}

var categoryStyles = map[Category]CategoryStyle{
	CategoryLegDay:    {Calories: 400, Color: "214", Icon: "🦵"},
	CategoryUpperBody: {Calories: 350, Color: "39", Icon: "💪"},
	CategoryCore:      {Calories: 200, Color: "220", Icon: "🤸"},
	CategoryYoga:      {Calories: 250, Color: "141", Icon: "🧘"},
	CategoryCycling:   {Calories: 500, Color: "42", Icon: "🚴"},
	CategoryBadminton: {Calories: 350, Color: "45", Icon: "🏸"},
	CategoryWalk10k:   {Calories: 400, Color: "78", Icon: "🚶"},
	CategoryPeriod:    {Calories: 0, Color: "204", Icon: "🩸"},
	CategoryOther:     {Calories: 300, Color: "250", Icon: "✨"},
}

// Style returns the lookup values for c. Unknown categories get Other's values.
func (c Category) Style() CategoryStyle {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return categoryStyles[CategoryOther]
}

// Calories returns the estimated calories for one session of c.
func (c Category) Calories() int {
	return c.Style().Calories
}

// Known reports whether c is one of the fixed categories.
func (c Category) Known() bool {
	_, ok := categoryStyles[c]
	return ok
}

// Chart colors for the activity breakdown
const (
	ChartColorActive   = "39"
	ChartColorPeriod   = "204"
	ChartColorInactive = "236"
)
