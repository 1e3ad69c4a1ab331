package main

import (
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/cli/backups"
	"github.com/julianstephens/fitlog/internal/cli/reminders"
	"github.com/julianstephens/fitlog/internal/cli/stats"
	"github.com/julianstephens/fitlog/internal/cli/system"
	"github.com/julianstephens/fitlog/internal/cli/weights"
	"github.com/julianstephens/fitlog/internal/cli/workouts"
	"github.com/julianstephens/fitlog/internal/config"
	"github.com/julianstephens/fitlog/internal/constants"
	fitlogerrors "github.com/julianstephens/fitlog/internal/errors"
	"github.com/julianstephens/fitlog/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_file}"`
	Store   string `help:"Store location: a SQLite path, a .json file, a PostgreSQL URL without credentials, or 'keyring'. Overrides the config file."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init   system.InitCmd     `cmd:"" help:"Initialize fitlog storage."`
	Tui    system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Stats  stats.StatsCmd     `cmd:"" help:"Show the activity summary for a month."`
	Series stats.SeriesCmd    `cmd:"" help:"Show the weight series for a period."`
	Watch  reminders.WatchCmd `cmd:"" help:"Run the reminder loop in the foreground."`

	Workout struct {
		Add    workouts.WorkoutAddCmd    `cmd:"" help:"Log a workout."`
		List   workouts.WorkoutListCmd   `cmd:"" help:"List workouts for a day."`
		Delete workouts.WorkoutDeleteCmd `cmd:"" help:"Delete a workout."`
	} `cmd:"" help:"Manage workouts."`
	Weight struct {
		Set   weights.WeightSetCmd   `cmd:"" help:"Record a weight sample."`
		Clear weights.WeightClearCmd `cmd:"" help:"Clear a weight sample."`
	} `cmd:"" help:"Manage weight samples."`
	Reminder struct {
		Show      reminders.ReminderShowCmd      `cmd:"" help:"Show reminder settings." default:"1"`
		Set       reminders.ReminderSetCmd       `cmd:"" help:"Change reminder settings."`
		Configure reminders.ReminderConfigureCmd `cmd:"" help:"Edit reminder settings interactively."`
		Check     reminders.ReminderCheckCmd     `cmd:"" help:"Evaluate reminders once and deliver any that are due."`
	} `cmd:"" help:"Manage workout reminders."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage the OS keyring connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Workout and weight tracker with daily reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	fitlogerrors.Fatal(run(ctx))
}

func run(ctx *kong.Context) (err error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	configDir, err := cfg.ConfigDir()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		return err
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", redactStore(cfg.Store))

	command := ctx.Command()
	if strings.HasPrefix(command, "keyring") {
		return ctx.Run(cli.NewContext(nil, cfg))
	}

	store, err := cli.OpenStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, store.Close())
	}()

	// init handles its own loading
	if !strings.HasPrefix(command, "init") {
		if err := store.Load(); err != nil {
			return err
		}
	}

	return ctx.Run(cli.NewContext(store, cfg))
}

// redactStore keeps connection strings out of the logs.
func redactStore(store string) string {
	if config.IsPostgres(store) {
		return "postgresql"
	}
	return store
}
