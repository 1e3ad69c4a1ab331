package reminders

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/scheduler"
	"github.com/julianstephens/fitlog/internal/settings"
)

type ReminderShowCmd struct {
	Output string `help:"Output format." enum:"text,json,yaml" default:"text" short:"o"`
}

func (c *ReminderShowCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Records.ReminderSettings()
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, current, func(w io.Writer) error {
		fmt.Fprintln(w, cli.HeaderStyle.Render("Reminder Settings"))
		fmt.Fprintln(w, cli.Field("Enabled", current.Enabled))
		times := strings.Join(current.Times, ", ")
		if times == "" {
			times = "(none)"
		}
		fmt.Fprintln(w, cli.Field("Times", times))
		fmt.Fprintln(w, cli.Field("Message", current.Message))
		fmt.Fprintln(w, cli.Field("System channel", ctx.Notifier().Permission()))
		return nil
	})
}

type ReminderSetCmd struct {
	Enabled *bool   `help:"Enable or disable reminders." negatable:""`
	Times   *string `help:"Comma separated reminder times (HH:MM). An empty value clears all times."`
	Message *string `help:"Reminder message."`
}

func (c *ReminderSetCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Records.ReminderSettings()
	if err != nil {
		return err
	}

	next, updated, err := c.apply(current)
	if err != nil {
		return err
	}
	if !updated {
		ctx.Println("No changes specified. Use --enabled, --times or --message, or 'fitlog reminder configure'.")
		return nil
	}

	return save(ctx, next)
}

func (c *ReminderSetCmd) apply(current models.ReminderSettings) (models.ReminderSettings, bool, error) {
	next := current
	updated := false

	if c.Enabled != nil {
		next.Enabled = *c.Enabled
		updated = true
	}
	if c.Times != nil {
		times, err := settings.ParseTimes(*c.Times)
		if err != nil {
			return current, false, err
		}
		next.Times = times
		updated = true
	}
	if c.Message != nil {
		next.Message = *c.Message
		updated = true
	}
	return next, updated, nil
}

// save replaces the settings document. Enabling reminders probes the system
// channel once so the user learns where reminders will show up.
func save(ctx *cli.Context, next models.ReminderSettings) error {
	if err := ctx.Records.SaveReminderSettings(next); err != nil {
		return err
	}
	ctx.Println("✓ Reminder settings updated.")

	if !next.Enabled {
		return nil
	}
	switch ctx.Notifier().RequestPermission() {
	case scheduler.PermissionGranted:
		ctx.Println(cli.OKStyle.Render("  System notifications are available."))
	case scheduler.PermissionDenied:
		ctx.Println(cli.WarnStyle.Render("  System notifications are turned off; reminders will appear in fitlog."))
	default:
		ctx.Println(cli.MutedStyle.Render("  fitlog-tray is not running; reminders will appear in fitlog until it starts."))
	}
	return nil
}
