package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/julianstephens/fitlog/internal/logger"
	"github.com/julianstephens/fitlog/internal/models"
)

// Permission is the system notification permission state.
type Permission int

const (
	// PermissionDefault means the user has not decided yet.
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// Channel delivers reminders to the user.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, d models.Delivery) error
}

// SystemChannel is a Channel gated by an OS-level permission.
type SystemChannel interface {
	Channel
	Permission() Permission
}

// Dispatcher routes each delivery to the system channel when permitted and
// to the in-app channel otherwise. A denial is remembered for the session.
type Dispatcher struct {
	system SystemChannel
	inApp  Channel

	mu     sync.Mutex
	denied bool
}

// NewDispatcher returns a Dispatcher. system may be nil.
func NewDispatcher(system SystemChannel, inApp Channel) *Dispatcher {
	return &Dispatcher{system: system, inApp: inApp}
}

// Denied reports whether the session has latched onto in-app delivery.
func (d *Dispatcher) Denied() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.denied
}

// Dispatch delivers each reminder and returns them with their channel set.
// Failed in-app deliveries are combined into the returned error.
func (d *Dispatcher) Dispatch(ctx context.Context, deliveries []models.Delivery) ([]models.Delivery, error) {
	var errs error
	delivered := make([]models.Delivery, 0, len(deliveries))

	for _, del := range deliveries {
		if d.trySystem(ctx, del) {
			del.Channel = models.ChannelSystem
			delivered = append(delivered, del)
			continue
		}

		del.Channel = models.ChannelInApp
		if err := d.inApp.Deliver(ctx, del); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("in-app delivery for %s failed: %w", del.Slot, err))
			continue
		}
		delivered = append(delivered, del)
	}

	return delivered, errs
}

func (d *Dispatcher) trySystem(ctx context.Context, del models.Delivery) bool {
	if d.system == nil {
		return false
	}

	d.mu.Lock()
	if d.denied {
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	switch d.system.Permission() {
	case PermissionGranted:
		if err := d.system.Deliver(ctx, del); err != nil {
			logger.Warn("System notification failed, using in-app", "channel", d.system.Name(), "slot", del.Slot, "error", err)
			return false
		}
		return true
	case PermissionDenied:
		d.mu.Lock()
		d.denied = true
		d.mu.Unlock()
		logger.Info("System notifications denied, using in-app for this session", "channel", d.system.Name())
		return false
	default:
		return false
	}
}
