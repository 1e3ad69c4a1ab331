package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/fitlog/internal/constants"
	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/utils"
)

// ErrAlreadyStarted is returned by Start on a running reminder.
var ErrAlreadyStarted = errors.New("reminder already started")

// Source supplies the records a reminder tick reads.
type Source interface {
	ReminderSettings() (models.ReminderSettings, error)
	WorkoutsOn(date string) ([]models.WorkoutEntry, error)
}

// Options configures a Reminder.
type Options struct {
	// Interval between ticks. Defaults to one minute.
	Interval time.Duration
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// OnDelivery is called for every delivered reminder.
	OnDelivery func(models.Delivery)
}

// Reminder is one reminder session: it owns the fired markers and the
// periodic evaluation loop.
type Reminder struct {
	source     Source
	dispatcher *Dispatcher
	markers    *SessionMarkers
	interval   time.Duration
	now        func() time.Time
	onDelivery func(models.Delivery)
	sessionID  string

	tickMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReminder(source Source, dispatcher *Dispatcher, opts Options) *Reminder {
	if opts.Interval <= 0 {
		opts.Interval = constants.DefaultReminderInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reminder{
		source:     source,
		dispatcher: dispatcher,
		markers:    NewSessionMarkers(),
		interval:   opts.Interval,
		now:        opts.Now,
		onDelivery: opts.OnDelivery,
		sessionID:  uuid.NewString(),
	}
}

// SessionID identifies this session in logs.
func (r *Reminder) SessionID() string {
	return r.sessionID
}

// Tick runs one evaluation and dispatches whatever is due.
func (r *Reminder) Tick(ctx context.Context) ([]models.Delivery, error) {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	now := r.now()
	date := utils.DateKey(now)

	settings, err := r.source.ReminderSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to read reminder settings: %w", err)
	}
	todays, err := r.source.WorkoutsOn(date)
	if err != nil {
		return nil, fmt.Errorf("failed to read workouts for %s: %w", date, err)
	}

	due := Evaluate(now, settings, todays, r.markers)
	if len(due) == 0 {
		return nil, nil
	}

	delivered, err := r.dispatcher.Dispatch(ctx, due)
	for _, d := range delivered {
		logger.Info("Reminder delivered", "session", r.sessionID, "date", d.Date, "slot", d.Slot, "channel", d.Channel)
		if r.onDelivery != nil {
			r.onDelivery(d)
		}
	}
	return delivered, err
}

// Start runs Tick immediately and then every interval until ctx is cancelled
// or Stop is called.
func (r *Reminder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return ErrAlreadyStarted
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(loopCtx, r.done)

	logger.Debug("Reminder session started", "session", r.sessionID, "interval", r.interval)
	return nil
}

func (r *Reminder) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runTick(ctx)
		}
	}
}

func (r *Reminder) runTick(ctx context.Context) {
	if _, err := r.Tick(ctx); err != nil {
		logger.Warn("Reminder tick failed", "session", r.sessionID, "error", err)
	}
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once and before Start.
func (r *Reminder) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Debug("Reminder session stopped", "session", r.sessionID)
}
