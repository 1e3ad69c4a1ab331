package stats

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/tui/components/charts"
	"github.com/julianstephens/fitlog/internal/utils"
	"github.com/julianstephens/fitlog/internal/weight"
)

const tableWidth = 24

type SeriesCmd struct {
	Granularity string `arg:"" help:"Series granularity." enum:"weekly,monthly,yearly" default:"monthly"`
	Month       string `help:"Month for the monthly series (YYYY-MM). Defaults to the current month." short:"m"`
	Year        int    `help:"Year for the yearly series. Defaults to the current year." short:"y"`
	Output      string `help:"Output format." enum:"text,json,yaml" default:"text" short:"o"`
}

func (c *SeriesCmd) Run(ctx *cli.Context) error {
	g, err := weight.ParseGranularity(c.Granularity)
	if err != nil {
		return err
	}

	now := ctx.Now()
	reference, err := c.reference(g, now)
	if err != nil {
		return err
	}

	weights, err := ctx.Records.Weights()
	if err != nil {
		return err
	}

	series, err := weight.NewBuilder(ctx.Now).Build(g, reference, weights)
	if err != nil {
		return err
	}

	return ctx.Render(c.Output, series, func(w io.Writer) error {
		fmt.Fprintln(w, cli.HeaderStyle.Render("Weight · "+title(g, reference)))
		if series.Len() == 0 {
			fmt.Fprintln(w, cli.MutedStyle.Render("  No days to show yet."))
			return nil
		}
		if _, _, ok := series.Range(); !ok {
			fmt.Fprintln(w, cli.MutedStyle.Render("  No weight recorded in this period."))
			return nil
		}
		fmt.Fprintln(w, charts.Sparkline(series))
		fmt.Fprintln(w)
		fmt.Fprintln(w, charts.Table(series, tableWidth))
		return nil
	})
}

func (c *SeriesCmd) reference(g models.Granularity, now time.Time) (time.Time, error) {
	switch g {
	case models.GranularityMonthly:
		if c.Month == "" {
			return now, nil
		}
		year, month, err := utils.ParseMonth(c.Month)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location()), nil
	case models.GranularityYearly:
		if c.Year == 0 {
			return now, nil
		}
		if c.Year < 1 || c.Year > 9999 {
			return time.Time{}, errors.New("year must be between 1 and 9999")
		}
		return time.Date(c.Year, time.January, 1, 0, 0, 0, 0, now.Location()), nil
	}
	return now, nil
}

func title(g models.Granularity, reference time.Time) string {
	switch g {
	case models.GranularityMonthly:
		return reference.Format("January 2006")
	case models.GranularityYearly:
		return strconv.Itoa(reference.Year())
	}
	return "last 7 days"
}
