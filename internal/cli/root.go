package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/fitlog/internal/backup"
	"github.com/julianstephens/fitlog/internal/config"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/notifier"
	"github.com/julianstephens/fitlog/internal/storage"
	"github.com/julianstephens/fitlog/internal/storage/sqlite"
)

// AutoBackupMinAge is how old the newest backup must be before the dashboard
// takes another one on startup.
const AutoBackupMinAge = 12 * time.Hour

type Context struct {
	Store   storage.Provider
	Records *storage.Records
	Config  config.Config
	Out     io.Writer
	In      io.Reader

	// Clock overrides the configured clock when set.
	Clock func() time.Time
}

func NewContext(store storage.Provider, cfg config.Config) *Context {
	return &Context{
		Store:   store,
		Records: storage.NewRecords(store),
		Config:  cfg,
		Out:     os.Stdout,
		In:      os.Stdin,
	}
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return c.Config.Now()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Notifier returns the tray channel configured for this invocation.
func (c *Context) Notifier() *notifier.Notifier {
	return notifier.New(notifier.Options{
		TrayAppIdentifier: c.Config.TrayAppIdentifier,
		Allowed:           c.Config.SystemNotificationsAllowed(),
	})
}

// IsSQLite reports whether the active store is a SQLite database file.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// BackupManager returns a backup manager for the SQLite store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if !c.IsSQLite() {
		return nil, fmt.Errorf("backups are only supported for SQLite stores (current: %s)", c.Store.GetConfigPath())
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup takes a backup when the newest one is stale and
// silently handles errors.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	path, err := mgr.AutoBackup(AutoBackupMinAge)
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	if path != "" {
		logger.Info("Automatic backup created", "path", filepath.Base(path))
	}
}
