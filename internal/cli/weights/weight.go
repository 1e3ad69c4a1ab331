package weights

import (
	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/utils"
)

type WeightSetCmd struct {
	Kg   string `arg:"" help:"Weight in kilograms. An empty value clears the day's sample."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today." short:"d"`
}

func (c *WeightSetCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}

	changed, err := ctx.Records.ApplyWeightInput(date, c.Kg)
	if err != nil {
		return err
	}

	switch {
	case !changed && c.Kg == "":
		ctx.Printf("No weight recorded on %s.\n", date)
	case !changed:
		ctx.Println(cli.WarnStyle.Render("Ignored: weight must be a positive number of kilograms."))
	case c.Kg == "":
		ctx.Printf("✓ Cleared weight for %s\n", date)
	default:
		weights, err := ctx.Records.Weights()
		if err != nil {
			return err
		}
		ctx.Printf("✓ Recorded %.1f kg on %s\n", weights[date], date)
	}
	return nil
}

type WeightClearCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today." short:"d"`
}

func (c *WeightClearCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(c.Date, ctx.Now())
	if err != nil {
		return err
	}

	cleared, err := ctx.Records.ClearWeight(date)
	if err != nil {
		return err
	}
	if !cleared {
		ctx.Printf("No weight recorded on %s.\n", date)
		return nil
	}
	ctx.Printf("✓ Cleared weight for %s\n", date)
	return nil
}
