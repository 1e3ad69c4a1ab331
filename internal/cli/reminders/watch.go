package reminders

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/fitlog/internal/cli"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/scheduler"
)

type WatchCmd struct {
	For time.Duration `help:"Stop after this long. Zero runs until interrupted." default:"0s"`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if c.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.For)
		defer cancel()
	}

	session := newSession(ctx, notifier.NewBanner(ctx.Out), scheduler.Options{})
	ctx.Println(cli.MutedStyle.Render("Watching for reminders. Press Ctrl+C to stop."))
	logger.Info("Watching for reminders", "session", session.SessionID())

	if err := session.Start(runCtx); err != nil {
		return err
	}
	defer session.Stop()

	<-runCtx.Done()
	return nil
}
