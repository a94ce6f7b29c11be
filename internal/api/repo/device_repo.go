package repo

import (
	"time"

	"iotplatform"
	"iotplatform/internal/api/models"

	"gorm.io/gorm"
)

type DeviceRepository struct {
	Db *gorm.DB
}

func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{Db: iotplatform.DB}
}

func (slf *DeviceRepository) FindByOwner(ownerID uint) ([]models.Device, error) {
	var devices []models.Device
	err := slf.Db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&devices).Error
	return devices, err
}

func (slf *DeviceRepository) FindOwned(id, ownerID uint) (models.Device, error) {
	var device models.Device
	err := slf.Db.Where("id = ? AND owner_id = ?", id, ownerID).First(&device).Error
	return device, err
}

func (slf *DeviceRepository) FindByID(id uint) (models.Device, error) {
	var device models.Device
	err := slf.Db.First(&device, id).Error
	return device, err
}

func (slf *DeviceRepository) Create(device *models.Device) error {
	return slf.Db.Create(device).Error
}

func (slf *DeviceRepository) Update(device *models.Device) error {
	return slf.Db.Save(device).Error
}

// Delete removes the device together with its sensor readings
func (slf *DeviceRepository) Delete(id uint) error {
	return slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", id).Delete(&models.SensorData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Device{}, id).Error
	})
}

// MarkSeen sets the device online and stamps LastSeen
func (slf *DeviceRepository) MarkSeen(id uint, at time.Time) error {
	return slf.Db.Model(&models.Device{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": models.DeviceOnline, "last_seen": at}).Error
}

// MarkOfflineIfStale sets an online device offline unless it was seen at or after
// the cutoff. It reports whether the device changed.
func (slf *DeviceRepository) MarkOfflineIfStale(id uint, cutoff time.Time) (bool, error) {
	result := slf.Db.Model(&models.Device{}).
		Where("id = ? AND status = ?", id, models.DeviceOnline).
		Where("last_seen IS NULL OR last_seen < ?", cutoff).
		Update("status", models.DeviceOffline)
	return result.RowsAffected > 0, result.Error
}

// AddReadings stores a batch of sensor readings
func (slf *DeviceRepository) AddReadings(readings []models.SensorData) error {
	if len(readings) == 0 {
		return nil
	}
	return slf.Db.Create(&readings).Error
}

// LatestReadings returns the newest readings of a device, newest first
func (slf *DeviceRepository) LatestReadings(deviceID uint, sensorType string, limit int) ([]models.SensorData, error) {
	var readings []models.SensorData
	query := slf.Db.Where("device_id = ?", deviceID)
	if sensorType != "" {
		query = query.Where("sensor_type = ?", sensorType)
	}
	err := query.Order("timestamp DESC").Order("id DESC").Limit(limit).Find(&readings).Error
	return readings, err
}

// FindStaleOnline returns online devices last seen before the cutoff, or never seen
func (slf *DeviceRepository) FindStaleOnline(cutoff time.Time) ([]models.Device, error) {
	var devices []models.Device
	err := slf.Db.
		Where("status = ?", models.DeviceOnline).
		Where("last_seen IS NULL OR last_seen < ?", cutoff).
		Order("id").
		Find(&devices).Error
	return devices, err
}
