package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
)

var (
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ChartColorActive))
	periodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ChartColorPeriod))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ChartColorInactive))
	gapStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	lineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// ActivityBar renders the month breakdown as one proportional bar of width
// cells followed by a legend.
func ActivityBar(s models.ActivitySummary, width int) string {
	if width < 1 || s.DaysInMonth == 0 {
		return ""
	}

	active := s.ActiveDays * width / s.DaysInMonth
	period := s.PeriodDays * width / s.DaysInMonth
	inactive := width - active - period

	bar := activeStyle.Render(strings.Repeat("█", active)) +
		periodStyle.Render(strings.Repeat("█", period)) +
		inactiveStyle.Render(strings.Repeat("█", inactive))

	legend := fmt.Sprintf("%s active %d  %s period %d  %s inactive %d",
		activeStyle.Render("■"), s.ActiveDays,
		periodStyle.Render("■"), s.PeriodDays,
		inactiveStyle.Render("■"), s.InactiveDays)

	return bar + "\n" + legend
}

// Sparkline renders one cell per point. Gaps render as a dim dot.
func Sparkline(s models.Series) string {
	lo, hi, ok := s.Range()
	var b strings.Builder
	for _, v := range s.Values {
		if v == nil || !ok {
			b.WriteString(gapStyle.Render("·"))
			continue
		}
		b.WriteString(lineStyle.Render(string(sparkBlocks[level(*v, lo, hi, len(sparkBlocks))])))
	}
	return b.String()
}

// Table renders one row per point with the value and a bar scaled between
// the series minimum and maximum.
func Table(s models.Series, width int) string {
	if width < 1 {
		width = 1
	}
	lo, hi, ok := s.Range()

	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	var b strings.Builder
	for i, label := range s.Labels {
		v := s.Values[i]
		if v == nil || !ok {
			fmt.Fprintf(&b, "%-*s  %7s\n", labelWidth, label, gapStyle.Render("—"))
			continue
		}
		cells := level(*v, lo, hi, width) + 1
		fmt.Fprintf(&b, "%-*s  %7.1f  %s\n", labelWidth, label, *v, lineStyle.Render(strings.Repeat("▇", cells)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// level maps v from [lo, hi] onto 0..steps-1.
func level(v, lo, hi float64, steps int) int {
	if hi <= lo {
		return steps / 2
	}
	idx := int((v - lo) / (hi - lo) * float64(steps-1))
	return min(max(idx, 0), steps-1)
}
