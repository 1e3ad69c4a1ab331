package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/fitlog/internal/activity"
	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/tui/components/charts"
	"github.com/julianstephens/fitlog/internal/utils"
)

const barWidth = 31

type StatsCmd struct {
	Month  string `help:"Month (YYYY-MM). Defaults to the current month." short:"m"`
	Output string `help:"Output format." enum:"text,json,yaml" default:"text" short:"o"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	year, month := ctx.Now().Year(), ctx.Now().Month()
	if c.Month != "" {
		var err error
		if year, month, err = utils.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	workouts, err := ctx.Records.Workouts()
	if err != nil {
		return err
	}

	summary, err := activity.Aggregate(year, month, workouts)
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, summary, func(w io.Writer) error {
		title := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
		fmt.Fprintln(w, cli.HeaderStyle.Render("Activity · "+title))
		fmt.Fprintln(w, charts.ActivityBar(summary, barWidth))
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.Field("Active days", summary.ActiveDays))
		fmt.Fprintln(w, cli.Field("Period days", summary.PeriodDays))
		fmt.Fprintln(w, cli.Field("Inactive days", summary.InactiveDays))
		fmt.Fprintln(w, cli.Field("Total calories", fmt.Sprintf("%d kcal", summary.TotalCalories)))
		return nil
	})
}
