package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/scheduler"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

// withTray points the notifier at a temp config dir and a fake process table.
func withTray(t *testing.T, executable string) string {
	t.Helper()
	configDir := t.TempDir()

	oldConfig, oldFind := userConfigDirFunc, findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldConfig
		findProcessFunc = oldFind
	})
	userConfigDirFunc = func() (string, error) { return configDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	return trayDir
}

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, constants.NotifierLockfileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	trayDir := withTray(t, "fitlog-tray")

	dir, err := GetTrayAppConfigDir(constants.TrayAppIdentifier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != trayDir {
		t.Errorf("expected %s, got %s", trayDir, dir)
	}

	customDir := "/custom/fitlog/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(trayDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir(constants.TrayAppIdentifier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	trayDir := withTray(t, "fitlog-tray")
	lockfilePath := filepath.Join(trayDir, constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err != ErrTrayNotRunning {
		t.Errorf("missing lockfile: got %v, want ErrTrayNotRunning", err)
	}

	invalid := []struct {
		name    string
		content string
		want    string
	}{
		{"two part format", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|s3cret", "port"},
		{"port out of range", "99999|12345|s3cret", "range"},
		{"bad pid", "8080|abc|s3cret", "process ID"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			writeLockfile(t, trayDir, tt.content)
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	writeLockfile(t, trayDir, "8080|12345|s3cret")

	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "other-app"}, nil }
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) { return &mockProcess{pid: pid, executable: "fitlog-tray"}, nil }
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" || secret != "s3cret" {
		t.Errorf("got port %s secret %s", port, secret)
	}
}

func TestPermission(t *testing.T) {
	trayDir := withTray(t, "fitlog-tray")

	off := New(Options{Allowed: false})
	if got := off.Permission(); got != scheduler.PermissionDenied {
		t.Errorf("disabled notifier permission = %v, want denied", got)
	}

	on := New(Options{Allowed: true})
	if got := on.RequestPermission(); got != scheduler.PermissionDefault {
		t.Errorf("no tray permission = %v, want default", got)
	}

	writeLockfile(t, trayDir, "8080|12345|s3cret")
	if got := on.Permission(); got != scheduler.PermissionGranted {
		t.Errorf("running tray permission = %v, want granted", got)
	}
}

func newWebhook(t *testing.T, received chan<- WebhookPayload) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Fitlog-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if received != nil {
			received <- payload
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1]
}

func TestSend(t *testing.T) {
	port := newWebhook(t, nil)
	n := New(Options{Allowed: true})
	ctx := context.Background()

	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := n.send(ctx, port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}
	if err := n.send(ctx, port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	if err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestDeliverThroughTray(t *testing.T) {
	received := make(chan WebhookPayload, 1)
	port := newWebhook(t, received)
	trayDir := withTray(t, "fitlog-tray")
	writeLockfile(t, trayDir, port+"|4242|test-secret")

	n := New(Options{Allowed: true})
	if n.Name() != "system" {
		t.Errorf("Name() = %s", n.Name())
	}

	err := n.Deliver(context.Background(), models.Delivery{Date: "2024-03-14", Slot: "09:00", Message: "Time to crush it! 💪"})
	if err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	select {
	case p := <-received:
		if p.Title != constants.NotificationTitle || p.Text != "Time to crush it! 💪" {
			t.Errorf("unexpected payload %+v", p)
		}
		if p.DurationMs != constants.NotificationDurationMs {
			t.Errorf("duration = %d", p.DurationMs)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("webhook did not receive the notification")
	}
}

func TestBannerAndQueue(t *testing.T) {
	var buf bytes.Buffer
	banner := NewBanner(&buf)
	d := models.Delivery{Date: "2024-03-14", Slot: "18:00", Message: "Stretch"}

	if err := banner.Deliver(context.Background(), d); err != nil {
		t.Fatalf("banner Deliver failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Stretch") {
		t.Errorf("banner output missing message: %q", buf.String())
	}

	q := NewQueue(1)
	if err := q.Deliver(context.Background(), d); err != nil {
		t.Fatalf("queue Deliver failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Deliver(ctx, d); err == nil {
		t.Error("expected full queue with cancelled context to fail")
	}

	pending := q.Pending()
	if len(pending) != 1 || pending[0].Slot != "18:00" {
		t.Errorf("Pending() = %+v", pending)
	}
	if len(q.Pending()) != 0 {
		t.Error("Pending should drain the queue")
	}
}
