package scheduler

import (
	"context"
	"sync"

	"github.com/julianstephens/fitlog/internal/models"
)

type fakeChannel struct {
	name string
	err  error

	mu  sync.Mutex
	got []models.Delivery
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Deliver(_ context.Context, d models.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, d)
	return nil
}

func (f *fakeChannel) delivered() []models.Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Delivery(nil), f.got...)
}

type fakeSystem struct {
	fakeChannel

	mu2       sync.Mutex
	perm      Permission
	permCalls int
}

func (f *fakeSystem) Permission() Permission {
	f.mu2.Lock()
	defer f.mu2.Unlock()
	f.permCalls++
	return f.perm
}

func (f *fakeSystem) setPermission(p Permission) {
	f.mu2.Lock()
	defer f.mu2.Unlock()
	f.perm = p
}

type fakeSource struct {
	mu       sync.Mutex
	settings models.ReminderSettings
	workouts models.Workouts
	err      error
}

func (f *fakeSource) ReminderSettings() (models.ReminderSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, f.err
}

func (f *fakeSource) WorkoutsOn(date string) ([]models.WorkoutEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workouts[date], f.err
}
