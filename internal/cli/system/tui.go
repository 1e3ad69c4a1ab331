package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/scheduler"
	"github.com/julianstephens/fitlog/internal/tui"
)

const bannerQueueSize = 32

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	queue := notifier.NewQueue(bannerQueueSize)
	interval := ctx.Config.ReminderInterval.Duration
	reminder := scheduler.NewReminder(ctx.Records, scheduler.NewDispatcher(ctx.Notifier(), queue), scheduler.Options{
		Interval: interval,
		Now:      ctx.Now,
	})
	logger.Debug("Dashboard reminder session", "session", reminder.SessionID())

	model := tui.NewModel(tui.Options{
		Records:  ctx.Records,
		Reminder: reminder,
		Queue:    queue,
		Now:      ctx.Now,
		Interval: interval,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
