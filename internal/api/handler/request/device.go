package request

type CreateDevice struct {
	Name       string `json:"name" validate:"required,max=255"`
	DeviceType string `json:"device_type" validate:"required,oneof=arduino esp32 raspberry-pi simulator"`
	IPAddress  string `json:"ip_address" validate:"omitempty,ip"`
	MACAddress string `json:"mac_address" validate:"omitempty,mac"`
}

type UpdateDevice struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=255"`
	Status          *string `json:"status" validate:"omitempty,oneof=online offline connecting"`
	IPAddress       *string `json:"ip_address" validate:"omitempty,ip"`
	FirmwareVersion *string `json:"firmware_version" validate:"omitempty,max=50"`
}

// UploadCode names a project to upload, or carries the code directly
type UploadCode struct {
	ProjectID    *uint   `json:"project_id" validate:"required_without=Code"`
	Code         *string `json:"code" validate:"required_without=ProjectID"`
	Language     string  `json:"language" validate:"omitempty,oneof=python cpp javascript"`
	TargetDevice *string `json:"target_device"`
}
