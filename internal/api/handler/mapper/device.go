package mapper

import (
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

type DeviceMapper interface {
	CreateDevice(req request.CreateDevice) models.Device

	// --update
	PatchDevice(req request.UpdateDevice, device *models.Device)

	ToDeviceResponses(entities []models.Device) []response.Device
	ToDeviceResponse(d models.Device) response.Device
	ToSensorDataResponses(entities []models.SensorData) []response.SensorData
}

// DeviceMapperImpl implements DeviceMapper
type DeviceMapperImpl struct{}

func NewDeviceMapper() DeviceMapper {
	return &DeviceMapperImpl{}
}

func (m DeviceMapperImpl) CreateDevice(req request.CreateDevice) models.Device {
	return models.Device{
		Name:       req.Name,
		DeviceType: models.DeviceType(req.DeviceType),
		IPAddress:  req.IPAddress,
		MACAddress: req.MACAddress,
	}
}

func (m DeviceMapperImpl) PatchDevice(req request.UpdateDevice, device *models.Device) {
	if req.Name != nil {
		device.Name = *req.Name
	}
	if req.Status != nil {
		device.Status = models.DeviceStatus(*req.Status)
	}
	if req.IPAddress != nil {
		device.IPAddress = *req.IPAddress
	}
	if req.FirmwareVersion != nil {
		device.FirmwareVersion = *req.FirmwareVersion
	}
}

func (m DeviceMapperImpl) ToDeviceResponses(entities []models.Device) []response.Device {
	responses := make([]response.Device, len(entities))
	for i, e := range entities {
		responses[i] = m.ToDeviceResponse(e)
	}
	return responses
}

func (m DeviceMapperImpl) ToDeviceResponse(d models.Device) response.Device {
	return response.Device{
		ID:              d.ID,
		Name:            d.Name,
		DeviceType:      string(d.DeviceType),
		Status:          string(d.Status),
		IPAddress:       d.IPAddress,
		MACAddress:      d.MACAddress,
		FirmwareVersion: d.FirmwareVersion,
		LastSeen:        d.LastSeen,
		CreatedAt:       d.CreatedAt,
	}
}

func (m DeviceMapperImpl) ToSensorDataResponses(entities []models.SensorData) []response.SensorData {
	responses := make([]response.SensorData, len(entities))
	for i, e := range entities {
		responses[i] = response.SensorData{
			ID:         e.ID,
			DeviceID:   e.DeviceID,
			SensorType: e.SensorType,
			Value:      e.Value,
			Unit:       e.Unit,
			Timestamp:  e.Timestamp,
		}
	}
	return responses
}
