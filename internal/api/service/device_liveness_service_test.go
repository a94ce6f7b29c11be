package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/devicebus"
)

// newTestLivenessService builds the service without starting its dispatcher
func newTestLivenessService(bus devicebus.Publisher, now time.Time) *DeviceLivenessService {
	ctx, cancel := context.WithCancel(context.Background())
	return &DeviceLivenessService{
		deviceRepo:     repo.NewDeviceRepository(),
		bus:            bus,
		logger:         zerolog.Nop(),
		now:            fixedClock(now),
		ctx:            ctx,
		cancel:         cancel,
		workerPool:     make(chan struct{}, 2),
		maxWorkers:     2,
		offlineAfter:   2 * time.Minute,
		dispatchPeriod: time.Hour,
	}
}

func setOnline(t *testing.T, db *gorm.DB, id uint, lastSeen *time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Device{}).Where("id = ?", id).
		Updates(map[string]any{"status": models.DeviceOnline, "last_seen": lastSeen}).Error)
}

func TestDeviceLiveness_MarksStaleDevicesOffline(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stale := createDevice(t, db, 1, "stale")
	fresh := createDevice(t, db, 1, "fresh")
	never := createDevice(t, db, 1, "never")
	idle := createDevice(t, db, 1, "idle")

	staleSeen := now.Add(-10 * time.Minute)
	freshSeen := now.Add(-30 * time.Second)
	setOnline(t, db, stale.ID, &staleSeen)
	setOnline(t, db, fresh.ID, &freshSeen)
	setOnline(t, db, never.ID, nil)

	bus := &fakeBus{}
	svc := newTestLivenessService(bus, now)
	svc.dispatchWork()
	svc.wg.Wait()

	status := func(id uint) models.DeviceStatus {
		var d models.Device
		require.NoError(t, db.First(&d, id).Error)
		return d.Status
	}
	assert.Equal(t, models.DeviceOffline, status(stale.ID))
	assert.Equal(t, models.DeviceOnline, status(fresh.ID))
	assert.Equal(t, models.DeviceOffline, status(never.ID))
	assert.Equal(t, models.DeviceOffline, status(idle.ID))

	msgs := bus.messages()
	require.Len(t, msgs, 2)
	subjects := []string{msgs[0].subject, msgs[1].subject}
	assert.ElementsMatch(t, []string{
		devicebus.Subject(stale.ID, devicebus.KindStatus),
		devicebus.Subject(never.ID, devicebus.KindStatus),
	}, subjects)

	for _, m := range msgs {
		var event devicebus.StatusEvent
		require.NoError(t, json.Unmarshal(m.data, &event))
		assert.Equal(t, "offline", event.Status)
	}
}

func TestDeviceLiveness_SeenDuringSweepStaysOnline(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	device := createDevice(t, db, 1, "racer")
	lastSeen := now.Add(-10 * time.Minute)
	setOnline(t, db, device.ID, &lastSeen)

	bus := &fakeBus{}
	svc := newTestLivenessService(bus, now)
	cutoff := now.Add(-svc.offlineAfter)
	stale, err := svc.deviceRepo.FindStaleOnline(cutoff)
	require.NoError(t, err)
	require.Len(t, stale, 1)

	// The device reports between the query and the update.
	require.NoError(t, svc.deviceRepo.MarkSeen(device.ID, now))

	svc.workerPool <- struct{}{}
	svc.wg.Add(1)
	svc.markOffline(stale[0], cutoff)

	var d models.Device
	require.NoError(t, db.First(&d, device.ID).Error)
	assert.Equal(t, models.DeviceOnline, d.Status)
	assert.Empty(t, bus.messages())
}

func TestDeviceLiveness_NothingStale(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().UTC()
	device := createDevice(t, db, 1, "fresh")
	setOnline(t, db, device.ID, &now)

	bus := &fakeBus{}
	svc := newTestLivenessService(bus, now)
	svc.dispatchWork()
	svc.wg.Wait()

	assert.Empty(t, bus.messages())
}

func TestDeviceLiveness_StartStop(t *testing.T) {
	setupTestDB(t)
	svc := NewDeviceLivenessService(1)
	assert.Equal(t, defaultOfflineAfter, svc.offlineAfter)
	assert.Equal(t, defaultSweepInterval, svc.dispatchPeriod)

	svc.Start()
	svc.Stop()
	assert.Error(t, svc.ctx.Err())
}
