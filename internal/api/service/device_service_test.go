package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/models"
	"iotplatform/internal/devicebus"
	"iotplatform/pkg"
)

func newTestDeviceService(bus devicebus.Publisher, now time.Time) *DeviceService {
	svc := NewDeviceService()
	svc.bus = bus
	svc.now = fixedClock(now)
	return svc
}

func TestDeviceService_RegisterStartsOffline(t *testing.T) {
	setupTestDB(t)
	svc := newTestDeviceService(nil, time.Now())

	a, err := svc.Register(models.Device{Name: "desk", DeviceType: models.DeviceArduino, Status: models.DeviceOnline}, 1)
	require.NoError(t, err)
	b, err := svc.Register(models.Device{Name: "garden", DeviceType: models.DeviceESP32}, 1)
	require.NoError(t, err)

	assert.Equal(t, models.DeviceOffline, a.Status)
	assert.Len(t, a.ProvisioningKey, 36)
	assert.NotEqual(t, a.ProvisioningKey, b.ProvisioningKey)

	devices, err := svc.FindAllForOwner(1)
	require.NoError(t, err)
	assert.Len(t, devices, 2)

	_, err = svc.FindOwned(a.ID, 2)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceService_PingMarksOnlineAndPublishes(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	bus := &fakeBus{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestDeviceService(bus, now)

	pinged, err := svc.Ping(device.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceOnline, pinged.Status)
	require.NotNil(t, pinged.LastSeen)
	assert.True(t, pinged.LastSeen.Equal(now))

	stored, err := svc.FindOwned(device.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceOnline, stored.Status)

	msgs := bus.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, devicebus.Subject(device.ID, devicebus.KindStatus), msgs[0].subject)

	var event devicebus.StatusEvent
	require.NoError(t, json.Unmarshal(msgs[0].data, &event))
	assert.Equal(t, "online", event.Status)
	assert.Equal(t, device.ID, event.DeviceID)
}

func TestDeviceService_PingWithoutBus(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	svc := newTestDeviceService(nil, time.Now())

	_, err := svc.Ping(device.ID, 1)
	require.NoError(t, err)

	_, err = svc.Ping(device.ID, 2)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceService_UploadRawCode(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	bus := &fakeBus{}
	svc := newTestDeviceService(bus, time.Now())

	got, err := svc.Upload(context.Background(), device.ID, 1, request.UploadCode{Code: pkg.ToPtr("print('hi')\n")}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "desk", got.Name)

	msgs := bus.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, devicebus.Subject(device.ID, devicebus.KindUpload), msgs[0].subject)

	var msg devicebus.UploadMessage
	require.NoError(t, json.Unmarshal(msgs[0].data, &msg))
	assert.Equal(t, "print('hi')\n", msg.Code)
	assert.Equal(t, "python", msg.Language)
	assert.Equal(t, "req-1", msg.RequestID)
	assert.Nil(t, msg.ProjectID)
}

func TestDeviceService_UploadProjectGeneratesForLanguage(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "uno")
	project := models.Project{Name: "Blink", Blocks: ledBlocks, Language: "python", GeneratedCode: "stale", OwnerID: 1}
	require.NoError(t, db.Create(&project).Error)
	bus := &fakeBus{}
	svc := newTestDeviceService(bus, time.Now())

	_, err := svc.Upload(context.Background(), device.ID, 1, request.UploadCode{ProjectID: &project.ID, Language: "cpp"}, "")
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), device.ID, 1, request.UploadCode{ProjectID: &project.ID}, "")
	require.NoError(t, err)

	msgs := bus.messages()
	require.Len(t, msgs, 2)

	var cpp, stored devicebus.UploadMessage
	require.NoError(t, json.Unmarshal(msgs[0].data, &cpp))
	require.NoError(t, json.Unmarshal(msgs[1].data, &stored))
	assert.Contains(t, cpp.Code, "digitalWrite(13, HIGH);")
	assert.Equal(t, "cpp", cpp.Language)
	require.NotNil(t, cpp.ProjectID)
	assert.Equal(t, project.ID, *cpp.ProjectID)
	assert.Equal(t, "stale", stored.Code)
}

func TestDeviceService_UploadFailures(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	foreign := models.Project{Name: "theirs", Blocks: ledBlocks, OwnerID: 2}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := newTestDeviceService(nil, time.Now()).Upload(context.Background(), device.ID, 1, request.UploadCode{Code: pkg.ToPtr("x")}, "")
	assert.ErrorIs(t, err, ErrBusUnavailable)

	svc := newTestDeviceService(&fakeBus{}, time.Now())
	_, err = svc.Upload(context.Background(), device.ID, 1, request.UploadCode{Code: pkg.ToPtr("")}, "")
	assert.ErrorIs(t, err, ErrNothingToUpload)

	_, err = svc.Upload(context.Background(), device.ID, 1, request.UploadCode{ProjectID: &foreign.ID}, "")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Upload(context.Background(), device.ID, 2, request.UploadCode{Code: pkg.ToPtr("x")}, "")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceService_DeleteRemovesReadings(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	require.NoError(t, db.Create(&models.SensorData{DeviceID: device.ID, SensorType: "temperature", Value: 20, Timestamp: time.Now()}).Error)
	svc := newTestDeviceService(nil, time.Now())

	assert.ErrorIs(t, svc.Delete(device.ID, 2), ErrDeviceNotFound)
	require.NoError(t, svc.Delete(device.ID, 1))

	var count int64
	require.NoError(t, db.Model(&models.SensorData{}).Where("device_id = ?", device.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeviceService_SensorDataNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	device := createDevice(t, db, 1, "desk")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.SensorData{DeviceID: device.ID, SensorType: "temperature", Value: float64(i), Timestamp: base.Add(time.Duration(i) * time.Minute)}).Error)
	}
	require.NoError(t, db.Create(&models.SensorData{DeviceID: device.ID, SensorType: "humidity", Value: 40, Timestamp: base}).Error)
	svc := newTestDeviceService(nil, time.Now())

	all, err := svc.SensorData(device.ID, 1, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	latest, err := svc.SensorData(device.ID, 1, "temperature", 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 4.0, latest[0].Value)
	assert.Equal(t, 3.0, latest[1].Value)

	_, err = svc.SensorData(device.ID, 2, "", 0)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}
