package reminders

import (
	"context"
	"fmt"
	"io"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/scheduler"
	"github.com/julianstephens/fitlog/internal/utils"
)

type ReminderCheckCmd struct {
	DryRun bool   `help:"Show due reminders without delivering them."`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text" short:"o"`
}

// Run evaluates once with a fresh session, so every slot that has passed
// today is due unless a workout was already logged.
func (c *ReminderCheckCmd) Run(ctx *cli.Context) error {
	var (
		due []models.Delivery
		err error
	)
	if c.DryRun {
		due, err = evaluate(ctx)
	} else {
		var banners io.Writer = ctx.Out
		if c.Output == cli.OutputJSON || c.Output == cli.OutputYAML {
			banners = io.Discard
		}
		due, err = newSession(ctx, notifier.NewBanner(banners), scheduler.Options{}).Tick(context.Background())
	}
	if err != nil {
		return err
	}
	if due == nil {
		due = []models.Delivery{}
	}

	return ctx.Render(c.Output, due, func(w io.Writer) error {
		if len(due) == 0 {
			fmt.Fprintln(w, cli.MutedStyle.Render("No reminders due."))
			return nil
		}
		if c.DryRun {
			fmt.Fprintln(w, cli.HeaderStyle.Render("Due reminders"))
			for _, d := range due {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
		return nil
	})
}

func evaluate(ctx *cli.Context) ([]models.Delivery, error) {
	now := ctx.Now()
	current, err := ctx.Records.ReminderSettings()
	if err != nil {
		return nil, err
	}
	todays, err := ctx.Records.WorkoutsOn(utils.DateKey(now))
	if err != nil {
		return nil, err
	}
	return scheduler.Evaluate(now, current, todays, scheduler.NewSessionMarkers()), nil
}

// newSession wires a reminder session to the tray and the given in-app channel.
func newSession(ctx *cli.Context, inApp scheduler.Channel, opts scheduler.Options) *scheduler.Reminder {
	if opts.Now == nil {
		opts.Now = ctx.Now
	}
	if opts.Interval <= 0 {
		opts.Interval = ctx.Config.ReminderInterval.Duration
	}
	dispatcher := scheduler.NewDispatcher(ctx.Notifier(), inApp)
	return scheduler.NewReminder(ctx.Records, dispatcher, opts)
}
