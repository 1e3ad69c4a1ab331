package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlog/internal/activity"
	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/weight"
)

// reminderTimeout bounds one evaluation so a full in-app queue cannot stall it.
const reminderTimeout = 10 * time.Second

type dataMsg struct {
	month       time.Time
	granularity models.Granularity
	summary     models.ActivitySummary
	series      models.Series
	err         error
}

type reminderTickMsg struct{}

type reminderResultMsg struct {
	delivered []models.Delivery
	err       error
}

type hideBannerMsg struct {
	id int
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadData()}
	if m.reminder != nil {
		cmds = append(cmds, func() tea.Msg { return reminderTickMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Dismiss):
			m.banners = nil
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.loadData()
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.loadData()
		case key.Matches(msg, m.keys.Today):
			now := m.now()
			m.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			return m, m.loadData()
		case key.Matches(msg, m.keys.Weekly):
			m.granularity = models.GranularityWeekly
			return m, m.loadData()
		case key.Matches(msg, m.keys.Monthly):
			m.granularity = models.GranularityMonthly
			return m, m.loadData()
		case key.Matches(msg, m.keys.Yearly):
			m.granularity = models.GranularityYearly
			return m, m.loadData()
		}

	case dataMsg:
		// Drop results for a view the user has already moved away from
		if !msg.month.Equal(m.month) || msg.granularity != m.granularity {
			return m, nil
		}
		m.summary, m.series, m.err = msg.summary, msg.series, msg.err

	case reminderTickMsg:
		return m, tea.Batch(
			m.runReminder(),
			tea.Tick(m.interval, func(time.Time) tea.Msg { return reminderTickMsg{} }),
		)

	case reminderResultMsg:
		if msg.err != nil {
			logger.Warn("Reminder evaluation failed", "error", msg.err)
		}
		if m.queue == nil {
			return m, nil
		}
		pending := m.queue.Pending()
		if len(pending) == 0 {
			return m, nil
		}
		m.banners = append(m.banners, pending...)
		m.bannerID++
		id := m.bannerID
		return m, tea.Tick(constants.InAppBannerDuration, func(time.Time) tea.Msg { return hideBannerMsg{id: id} })

	case hideBannerMsg:
		if msg.id == m.bannerID {
			m.banners = nil
		}
	}

	return m, nil
}

func (m Model) loadData() tea.Cmd {
	records, month, g, now := m.records, m.month, m.granularity, m.now
	return func() tea.Msg {
		msg := dataMsg{month: month, granularity: g}

		workouts, err := records.Workouts()
		if err != nil {
			msg.err = err
			return msg
		}
		if msg.summary, err = activity.Aggregate(month.Year(), month.Month(), workouts); err != nil {
			msg.err = err
			return msg
		}

		weights, err := records.Weights()
		if err != nil {
			msg.err = err
			return msg
		}
		reference := month
		if g == models.GranularityWeekly {
			reference = now()
		}
		msg.series, msg.err = weight.NewBuilder(now).Build(g, reference, weights)
		return msg
	}
}

func (m Model) runReminder() tea.Cmd {
	reminder := m.reminder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reminderTimeout)
		defer cancel()
		delivered, err := reminder.Tick(ctx)
		return reminderResultMsg{delivered: delivered, err: err}
	}
}
