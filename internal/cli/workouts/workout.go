package workouts

import (
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/fitlog/internal/activity"
	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/storage"
	"github.com/julianstephens/fitlog/internal/utils"
)

// ErrFutureDate is returned when logging a workout on a day that has not happened yet.
var ErrFutureDate = errors.New("cannot log workouts for a future date")

type WorkoutAddCmd struct {
	Category string `arg:"" help:"Workout category (e.g. 'Leg Day', yoga, walk, period)."`
	Date     string `help:"Date (YYYY-MM-DD). Defaults to today." short:"d"`
	Notes    string `help:"Optional notes." short:"n"`
}

func (c *WorkoutAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	now := ctx.Now()
	date, err := utils.ResolveDate(c.Date, now)
	if err != nil {
		return err
	}
	if date > utils.DateKey(now) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}

	entry := models.WorkoutEntry{Category: category, Notes: c.Notes}
	if err := ctx.Records.AddWorkout(date, entry); err != nil {
		return err
	}

	ctx.Printf("✓ Logged %s %s on %s (%d kcal)\n", category.Style().Icon, category, date, entry.Calories())
	return nil
}

type WorkoutListCmd struct {
	Date   string `help:"Date (YYYY-MM-DD). Defaults to today." short:"d"`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text" short:"o"`
}

func (c *WorkoutListCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}

	entries, err := ctx.Records.WorkoutsOn(date)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.WorkoutEntry{}
	}

	return ctx.Render(c.Output, entries, func(w io.Writer) error {
		fmt.Fprintln(w, cli.HeaderStyle.Render("Workouts on "+date))
		if len(entries) == 0 {
			fmt.Fprintln(w, cli.MutedStyle.Render("  Nothing logged."))
			return nil
		}

		total := 0
		for i, e := range entries {
			style := e.Category.Style()
			line := fmt.Sprintf("  %d. %s %-12s %4d kcal", i+1, style.Icon, e.Category, e.Calories())
			if e.Notes != "" {
				line += "  " + cli.MutedStyle.Render(e.Notes)
			}
			fmt.Fprintln(w, line)
			total += e.Calories()
		}

		switch activity.Classify(entries) {
		case activity.DayActive:
			fmt.Fprintln(w, cli.Field("Total", fmt.Sprintf("%d kcal", total)))
		case activity.DayPeriod:
			fmt.Fprintln(w, cli.Field("Day", "period"))
		}
		return nil
	})
}

type WorkoutDeleteCmd struct {
	Index int    `arg:"" help:"Entry number as shown by 'fitlog workout list' (1-based)."`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today." short:"d"`
}

func (c *WorkoutDeleteCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}

	removed, err := ctx.Records.DeleteWorkout(date, c.Index-1)
	if err != nil {
		if errors.Is(err, storage.ErrIndexOutOfRange) {
			return fmt.Errorf("no workout #%d on %s", c.Index, date)
		}
		return err
	}

	ctx.Printf("✓ Deleted %s from %s\n", removed.Category, date)
	return nil
}
