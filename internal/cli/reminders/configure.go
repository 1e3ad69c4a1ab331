package reminders

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/settings"
)

// FormModel holds the editable reminder fields as form strings.
type FormModel struct {
	Enabled bool
	Times   string
	Message string
}

func NewFormModel(s models.ReminderSettings) *FormModel {
	return &FormModel{
		Enabled: s.Enabled,
		Times:   strings.Join(s.Times, ", "),
		Message: s.Message,
	}
}

// Settings converts the form back into a settings document.
func (fm *FormModel) Settings() (models.ReminderSettings, error) {
	times, err := settings.ParseTimes(fm.Times)
	if err != nil {
		return models.ReminderSettings{}, err
	}
	return models.ReminderSettings{
		Enabled: fm.Enabled,
		Times:   times,
		Message: fm.Message,
	}, nil
}

func NewReminderForm(fm *FormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Daily workout reminders").
				Affirmative("On").
				Negative("Off").
				Value(&fm.Enabled),
			huh.NewInput().
				Title("Times").
				Description("Comma separated, 24h HH:MM").
				Value(&fm.Times).
				Validate(func(s string) error {
					_, err := settings.ParseTimes(s)
					return err
				}),
			huh.NewInput().
				Title("Message").
				Value(&fm.Message),
		),
	)
}

type ReminderConfigureCmd struct{}

func (c *ReminderConfigureCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Records.ReminderSettings()
	if err != nil {
		return err
	}

	fm := NewFormModel(current)
	if err := NewReminderForm(fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ctx.Println("Cancelled.")
			return nil
		}
		return err
	}

	next, err := fm.Settings()
	if err != nil {
		return err
	}
	return save(ctx, next)
}
