package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/models"
)

// setupTestDB points the process-wide handles at a fresh in-memory database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), iotplatform.GormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	iotplatform.DB = db
	iotplatform.Logger = zerolog.Nop()
	iotplatform.Redis = nil
	iotplatform.Nats = nil
	iotplatform.SetConfig(iotplatform.AppConfig{})

	t.Cleanup(func() {
		if conn, err := db.DB(); err == nil {
			conn.Close()
		}
	})
	return db
}

type published struct {
	subject string
	data    []byte
}

// fakeBus records what services publish
type fakeBus struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (b *fakeBus) Publish(subject string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.msgs = append(b.msgs, published{subject: subject, data: append([]byte(nil), data...)})
	return nil
}

func (b *fakeBus) messages() []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]published(nil), b.msgs...)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Ada", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createDevice(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Device {
	t.Helper()
	device := models.Device{Name: name, DeviceType: models.DeviceESP32, Status: models.DeviceOffline, OwnerID: ownerID, ProvisioningKey: uuid.NewString()}
	require.NoError(t, db.Create(&device).Error)
	return device
}

const ledBlocks = `<xml xmlns="https://developers.google.com/blockly/xml">
  <block type="iot_led_set"><field name="PIN">13</field><field name="STATE">ON</field></block>
</xml>`
