package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/scheduler"
	"github.com/julianstephens/fitlog/internal/storage"
)

// Options wires the dashboard to its records and reminder session.
type Options struct {
	Records *storage.Records
	// Reminder is evaluated every Interval. Nil disables reminders.
	Reminder *scheduler.Reminder
	// Queue is the reminder session's in-app channel.
	Queue    *notifier.Queue
	Now      func() time.Time
	Interval time.Duration
}

type Model struct {
	records  *storage.Records
	reminder *scheduler.Reminder
	queue    *notifier.Queue
	now      func() time.Time
	interval time.Duration

	keys KeyMap
	help help.Model

	month       time.Time // first day of the displayed month
	granularity models.Granularity
	summary     models.ActivitySummary
	series      models.Series
	err         error

	banners  []models.Delivery
	bannerID int

	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Interval <= 0 {
		opts.Interval = constants.DefaultReminderInterval
	}
	now := opts.Now()
	return Model{
		records:     opts.Records,
		reminder:    opts.Reminder,
		queue:       opts.Queue,
		now:         opts.Now,
		interval:    opts.Interval,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		month:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		granularity: models.GranularityMonthly,
	}
}

// Month returns the first day of the displayed month.
func (m Model) Month() time.Time {
	return m.month
}

func (m Model) Granularity() models.Granularity {
	return m.granularity
}

func (m Model) Summary() models.ActivitySummary {
	return m.summary
}

func (m Model) Series() models.Series {
	return m.series
}

// Banners returns the reminders currently on screen.
func (m Model) Banners() []models.Delivery {
	return m.banners
}
