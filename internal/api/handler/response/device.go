package response

import "time"

type Device struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	DeviceType      string     `json:"device_type"`
	Status          string     `json:"status"`
	IPAddress       string     `json:"ip_address"`
	MACAddress      string     `json:"mac_address"`
	FirmwareVersion string     `json:"firmware_version"`
	LastSeen        *time.Time `json:"last_seen"`
	CreatedAt       time.Time  `json:"created_at"`
}

// RegisteredDevice is returned once, at registration, with the key the device authenticates with
type RegisteredDevice struct {
	Device
	ProvisioningKey string `json:"provisioning_key"`
}

type SensorData struct {
	ID         uint      `json:"id"`
	DeviceID   uint      `json:"device_id"`
	SensorType string    `json:"sensor_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`
}
