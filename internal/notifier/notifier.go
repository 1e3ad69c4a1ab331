package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/scheduler"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

var (
	_ scheduler.SystemChannel = (*Notifier)(nil)
	_ scheduler.Channel       = (*Banner)(nil)
	_ scheduler.Channel       = (*Queue)(nil)
)

// ErrTrayNotRunning is returned when no validated tray process owns the lockfile.
var ErrTrayNotRunning = errors.New("fitlog-tray is not running")

// Options configures the tray notifier.
type Options struct {
	// TrayAppIdentifier names the tray app's config directory.
	TrayAppIdentifier string
	// Allowed is false when the user has turned system notifications off.
	Allowed bool
	// Timeout bounds each webhook request.
	Timeout time.Duration
}

// Notifier delivers reminders through the fitlog tray app's local webhook.
type Notifier struct {
	identifier string
	allowed    bool
	client     *http.Client
}

type WebhookPayload struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New(opts Options) *Notifier {
	if opts.TrayAppIdentifier == "" {
		opts.TrayAppIdentifier = constants.TrayAppIdentifier
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Notifier{
		identifier: opts.TrayAppIdentifier,
		allowed:    opts.Allowed,
		client:     &http.Client{Timeout: opts.Timeout},
	}
}

func (n *Notifier) Name() string {
	return string(models.ChannelSystem)
}

// Permission is derived on every call: denied when turned off in config,
// granted while a validated tray process is running, default otherwise.
func (n *Notifier) Permission() scheduler.Permission {
	if !n.allowed {
		return scheduler.PermissionDenied
	}
	if _, _, err := n.resolve(); err != nil {
		return scheduler.PermissionDefault
	}
	return scheduler.PermissionGranted
}

// RequestPermission probes the tray once and reports the outcome.
func (n *Notifier) RequestPermission() scheduler.Permission {
	perm := n.Permission()
	if perm == scheduler.PermissionDefault {
		if _, _, err := n.resolve(); err != nil {
			logger.Info("System notifications unavailable, reminders will use in-app delivery", "reason", err)
		}
	}
	return perm
}

func (n *Notifier) Deliver(ctx context.Context, d models.Delivery) error {
	port, secret, err := n.resolve()
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      constants.NotificationTitle,
		Text:       d.Message,
		DurationMs: constants.NotificationDurationMs,
	}
	return n.send(ctx, port, secret, payload)
}

func (n *Notifier) resolve() (string, string, error) {
	dir, err := GetTrayAppConfigDir(n.identifier)
	if err != nil {
		return "", "", err
	}
	return findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
}

// GetTrayAppConfigDir returns the directory holding the tray app's lockfile.
func GetTrayAppConfigDir(identifier string) (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, identifier)

	// settings.json may point the lockfile somewhere else
	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads a "port|pid|secret" lockfile and checks
// that pid is a live tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(ctx context.Context, port, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fitlog-Secret", secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
