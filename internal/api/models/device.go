package models

import "time"

type DeviceType string

const (
	DeviceArduino     DeviceType = "arduino"
	DeviceESP32       DeviceType = "esp32"
	DeviceRaspberryPi DeviceType = "raspberry-pi"
	DeviceSimulator   DeviceType = "simulator"
)

type DeviceStatus string

const (
	DeviceOnline     DeviceStatus = "online"
	DeviceOffline    DeviceStatus = "offline"
	DeviceConnecting DeviceStatus = "connecting"
)

type Device struct {
	ID              uint         `gorm:"primaryKey"`
	Name            string       `gorm:"not null"`
	DeviceType      DeviceType   `gorm:"type:varchar(20);not null"`
	Status          DeviceStatus `gorm:"type:varchar(20);default:offline"`
	IPAddress       string       `gorm:"size:45"`
	MACAddress      string       `gorm:"size:17"`
	FirmwareVersion string       `gorm:"size:50"`
	// ProvisioningKey identifies the device on the message bus
	ProvisioningKey string `gorm:"size:36;uniqueIndex"`
	LastSeen        *time.Time
	OwnerID         uint      `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Device) TableName() string {
	return "devices"
}

type SensorData struct {
	ID         uint      `gorm:"primaryKey"`
	DeviceID   uint      `gorm:"not null;index"`
	SensorType string    `gorm:"size:50;not null"`
	Value      float64   `gorm:"not null"`
	Unit       string    `gorm:"size:20"`
	Timestamp  time.Time `gorm:"index"`
}

func (SensorData) TableName() string {
	return "sensor_data"
}
