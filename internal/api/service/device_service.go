package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/devicebus"
	"iotplatform/internal/gen"
)

const (
	DefaultSensorDataLimit = 100
	MaxSensorDataLimit     = 1000
)

type DeviceService struct {
	deviceRepo  *repo.DeviceRepository
	projectRepo *repo.ProjectRepository
	codeService *CodeService
	bus         devicebus.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewDeviceService() *DeviceService {
	return &DeviceService{
		deviceRepo:  repo.NewDeviceRepository(),
		projectRepo: repo.NewProjectRepository(),
		codeService: NewCodeService(),
		bus:         busPublisher(),
		logger:      iotplatform.Logger,
		now:         time.Now,
	}
}

// busPublisher returns the shared NATS connection, or nil when none is configured
func busPublisher() devicebus.Publisher {
	if iotplatform.Nats == nil {
		return nil
	}
	return iotplatform.Nats
}

func (slf *DeviceService) FindAllForOwner(ownerID uint) ([]models.Device, error) {
	devices, err := slf.deviceRepo.FindByOwner(ownerID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("ownerId", ownerID).Msg("Error listing devices")
		return nil, err
	}
	return devices, nil
}

// Register stores a new device, offline until it first reports in
func (slf *DeviceService) Register(device models.Device, ownerID uint) (*models.Device, error) {
	device.OwnerID = ownerID
	device.Status = models.DeviceOffline
	device.ProvisioningKey = uuid.NewString()

	if err := slf.deviceRepo.Create(&device); err != nil {
		slf.logger.Error().Err(err).Uint("ownerId", ownerID).Msg("Error registering device")
		return nil, err
	}
	slf.logger.Info().Uint("deviceId", device.ID).Str("deviceType", string(device.DeviceType)).Msg("Device registered")
	return &device, nil
}

func (slf *DeviceService) FindOwned(id, ownerID uint) (*models.Device, error) {
	device, err := slf.deviceRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting device")
	}
	return &device, nil
}

func (slf *DeviceService) Update(id, ownerID uint, patch func(*models.Device)) (*models.Device, error) {
	device, err := slf.deviceRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting device for update")
	}

	patch(&device)
	if err := slf.deviceRepo.Update(&device); err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", id).Msg("Error updating device")
		return nil, err
	}
	return &device, nil
}

func (slf *DeviceService) Delete(id, ownerID uint) error {
	if _, err := slf.deviceRepo.FindOwned(id, ownerID); err != nil {
		return slf.notFound(err, id, "Error getting device for delete")
	}
	if err := slf.deviceRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", id).Msg("Error deleting device")
		return err
	}
	slf.logger.Info().Uint("deviceId", id).Msg("Device removed")
	return nil
}

// Ping marks the device online now and announces it on the bus when one is configured
func (slf *DeviceService) Ping(id, ownerID uint) (*models.Device, error) {
	device, err := slf.deviceRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting device to ping")
	}

	now := slf.now().UTC()
	if err := slf.deviceRepo.MarkSeen(device.ID, now); err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", id).Msg("Error marking device seen")
		return nil, err
	}
	device.Status = models.DeviceOnline
	device.LastSeen = &now

	if slf.bus != nil {
		event := devicebus.StatusEvent{DeviceID: device.ID, Status: string(device.Status), LastSeen: now}
		if err := devicebus.Publish(slf.bus, device.ID, devicebus.KindStatus, event); err != nil {
			slf.logger.Warn().Err(err).Uint("deviceId", id).Msg("Error publishing device status")
		}
	}
	return &device, nil
}

// Upload sends code to the device. The code is either given directly or taken from a project
// the user owns, regenerated when the project has none stored in the requested language.
func (slf *DeviceService) Upload(ctx context.Context, id, ownerID uint, dto request.UploadCode, requestID string) (*models.Device, error) {
	device, err := slf.deviceRepo.FindOwned(id, ownerID)
	if err != nil {
		return nil, slf.notFound(err, id, "Error getting device for upload")
	}
	if slf.bus == nil {
		return nil, ErrBusUnavailable
	}

	lang, err := gen.ParseLanguage(dto.Language)
	if err != nil {
		return nil, err
	}

	msg := devicebus.UploadMessage{
		DeviceID:  device.ID,
		ProjectID: dto.ProjectID,
		Language:  lang.String(),
		RequestID: requestID,
		SentAt:    slf.now().UTC(),
	}

	switch {
	case dto.ProjectID != nil:
		code, err := slf.projectCode(ctx, *dto.ProjectID, ownerID, lang, dto.TargetDevice)
		if err != nil {
			return nil, err
		}
		msg.Code = code
	case dto.Code != nil:
		msg.Code = *dto.Code
	}
	if msg.Code == "" {
		return nil, ErrNothingToUpload
	}

	if err := devicebus.Publish(slf.bus, device.ID, devicebus.KindUpload, msg); err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", id).Msg("Error publishing code upload")
		return nil, fmt.Errorf("publish upload: %w", err)
	}
	slf.logger.Info().Uint("deviceId", id).Str("language", msg.Language).Int("bytes", len(msg.Code)).Msg("Code uploaded to device")
	return &device, nil
}

func (slf *DeviceService) projectCode(ctx context.Context, projectID, ownerID uint, lang gen.Language, targetDevice *string) (string, error) {
	project, err := slf.projectRepo.FindOwned(projectID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProjectNotFound
		}
		return "", err
	}
	if project.GeneratedCode != "" && project.Language == lang.String() {
		return project.GeneratedCode, nil
	}

	req := gen.Request{Document: project.Blocks, Language: lang}
	if targetDevice != nil {
		req.TargetDevice = *targetDevice
	}
	result, err := slf.codeService.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return result.Code, nil
}

// SensorData returns the device's newest readings. A non-positive limit selects the default.
func (slf *DeviceService) SensorData(id, ownerID uint, sensorType string, limit int) ([]models.SensorData, error) {
	if _, err := slf.deviceRepo.FindOwned(id, ownerID); err != nil {
		return nil, slf.notFound(err, id, "Error getting device for sensor data")
	}
	if limit <= 0 {
		limit = DefaultSensorDataLimit
	}
	if limit > MaxSensorDataLimit {
		limit = MaxSensorDataLimit
	}

	readings, err := slf.deviceRepo.LatestReadings(id, sensorType, limit)
	if err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", id).Msg("Error reading sensor data")
		return nil, err
	}
	return readings, nil
}

func (slf *DeviceService) notFound(err error, id uint, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDeviceNotFound
	}
	slf.logger.Error().Err(err).Uint("deviceId", id).Msg(msg)
	return err
}
