package scheduler

import (
	"sync"
	"time"

	"github.com/julianstephens/fitlog/internal/models"
	"github.com/julianstephens/fitlog/internal/utils"
)

// MarkerStore records which (date, slot) reminders have already fired.
type MarkerStore interface {
	Fired(date, slot string) bool
	MarkFired(date, slot string)
}

// SessionMarkers is an in-memory MarkerStore that lives as long as its session.
type SessionMarkers struct {
	mu    sync.Mutex
	fired map[string]struct{}
}

func NewSessionMarkers() *SessionMarkers {
	return &SessionMarkers{fired: make(map[string]struct{})}
}

func (m *SessionMarkers) Fired(date, slot string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.fired[date+"_"+slot]
	return ok
}

func (m *SessionMarkers) MarkFired(date, slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fired[date+"_"+slot] = struct{}{}
}

// Evaluate returns the reminders due at now and marks them fired. Nothing is
// due when reminders are disabled or anything has been logged today.
func Evaluate(now time.Time, settings models.ReminderSettings, todays []models.WorkoutEntry, markers MarkerStore) []models.Delivery {
	if !settings.Enabled || len(settings.Times) == 0 {
		return nil
	}
	if len(todays) > 0 {
		return nil
	}

	date := utils.DateKey(now)
	current := now.Hour()*60 + now.Minute()

	var due []models.Delivery
	for _, slot := range settings.Times {
		minutes, err := utils.ParseTimeToMinutes(slot)
		if err != nil {
			continue
		}
		if current < minutes || markers.Fired(date, slot) {
			continue
		}

		markers.MarkFired(date, slot)
		due = append(due, models.Delivery{
			Date:    date,
			Slot:    slot,
			Message: settings.Message,
		})
	}
	return due
}
