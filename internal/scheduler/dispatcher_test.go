package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/julianstephens/fitlog/internal/models"
)

func deliveries(slots ...string) []models.Delivery {
	out := make([]models.Delivery, len(slots))
	for i, s := range slots {
		out[i] = models.Delivery{Date: "2024-03-14", Slot: s, Message: "go"}
	}
	return out
}

func TestDispatchGrantedUsesSystem(t *testing.T) {
	system := &fakeSystem{fakeChannel: fakeChannel{name: "tray"}, perm: PermissionGranted}
	inApp := &fakeChannel{name: "in-app"}
	d := NewDispatcher(system, inApp)

	got, err := d.Dispatch(context.Background(), deliveries("09:00"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.ChannelSystem, got[0].Channel)
	assert.Len(t, system.delivered(), 1)
	assert.Empty(t, inApp.delivered())
}

func TestDispatchDefaultFallsBackAndRechecks(t *testing.T) {
	system := &fakeSystem{fakeChannel: fakeChannel{name: "tray"}, perm: PermissionDefault}
	inApp := &fakeChannel{name: "in-app"}
	d := NewDispatcher(system, inApp)

	got, err := d.Dispatch(context.Background(), deliveries("09:00"))
	require.NoError(t, err)
	assert.Equal(t, models.ChannelInApp, got[0].Channel)
	assert.False(t, d.Denied())

	system.setPermission(PermissionGranted)
	got, err = d.Dispatch(context.Background(), deliveries("18:00"))
	require.NoError(t, err)
	assert.Equal(t, models.ChannelSystem, got[0].Channel)
	assert.Equal(t, 2, system.permCalls)
}

func TestDispatchDeniedLatchesForSession(t *testing.T) {
	system := &fakeSystem{fakeChannel: fakeChannel{name: "tray"}, perm: PermissionDenied}
	inApp := &fakeChannel{name: "in-app"}
	d := NewDispatcher(system, inApp)

	_, err := d.Dispatch(context.Background(), deliveries("09:00"))
	require.NoError(t, err)
	assert.True(t, d.Denied())

	system.setPermission(PermissionGranted)
	got, err := d.Dispatch(context.Background(), deliveries("18:00"))
	require.NoError(t, err)
	assert.Equal(t, models.ChannelInApp, got[0].Channel)
	assert.Equal(t, 1, system.permCalls, "permission is not consulted after a denial")
	assert.Empty(t, system.delivered())
	assert.Len(t, inApp.delivered(), 2)
}

func TestDispatchSystemFailureFallsBack(t *testing.T) {
	system := &fakeSystem{fakeChannel: fakeChannel{name: "tray", err: errors.New("tray gone")}, perm: PermissionGranted}
	inApp := &fakeChannel{name: "in-app"}
	d := NewDispatcher(system, inApp)

	got, err := d.Dispatch(context.Background(), deliveries("09:00"))
	require.NoError(t, err)
	assert.Equal(t, models.ChannelInApp, got[0].Channel)
	assert.False(t, d.Denied())
}

func TestDispatchWithoutSystemChannel(t *testing.T) {
	inApp := &fakeChannel{name: "in-app"}
	d := NewDispatcher(nil, inApp)

	got, err := d.Dispatch(context.Background(), deliveries("09:00", "18:00"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, inApp.delivered(), 2)
}

func TestDispatchCombinesInAppErrors(t *testing.T) {
	inApp := &fakeChannel{name: "in-app", err: errors.New("closed")}
	d := NewDispatcher(nil, inApp)

	got, err := d.Dispatch(context.Background(), deliveries("09:00", "18:00"))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "default", PermissionDefault.String())
	assert.Equal(t, "granted", PermissionGranted.String())
	assert.Equal(t, "denied", PermissionDenied.String())
}
