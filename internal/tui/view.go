package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/tui/components/charts"
)

const (
	barWidth   = 31
	tableWidth = 20
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{titleStyle.Render("fitlog · " + m.month.Format("January 2006"))}
	for _, d := range m.banners {
		sections = append(sections, notifier.RenderBanner(d))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections,
		m.viewActivity(),
		m.viewTabs(),
		m.viewWeight(),
		m.help.View(m.keys),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewActivity() string {
	s := m.summary
	body := strings.Join([]string{
		panelTitleStyle.Render("Activity"),
		charts.ActivityBar(s, barWidth),
		fmt.Sprintf("Total calories: %d kcal", s.TotalCalories),
	}, "\n")
	return panelStyle.Render(body)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, g := range []models.Granularity{models.GranularityWeekly, models.GranularityMonthly, models.GranularityYearly} {
		style := inactiveTabStyle
		if g == m.granularity {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(strings.ToUpper(string(g[:1]))+string(g[1:])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewWeight() string {
	lines := []string{panelTitleStyle.Render("Weight")}

	lo, hi, ok := m.series.Range()
	switch {
	case m.series.Len() == 0:
		lines = append(lines, mutedStyle.Render("No days to show yet."))
	case !ok:
		lines = append(lines, mutedStyle.Render("No weight recorded in this period."))
	case m.granularity == models.GranularityMonthly:
		lines = append(lines,
			charts.Sparkline(m.series),
			mutedStyle.Render(fmt.Sprintf("%s–%s  min %.1f kg  max %.1f kg",
				m.series.Labels[0], m.series.Labels[m.series.Len()-1], lo, hi)),
		)
	default:
		lines = append(lines, charts.Table(m.series, tableWidth))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
