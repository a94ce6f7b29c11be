package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/devicebus"
)

// TelemetryService stores the sensor readings devices publish on the bus
type TelemetryService struct {
	deviceRepo *repo.DeviceRepository
	logger     zerolog.Logger
	now        func() time.Time

	sub *nats.Subscription
}

func NewTelemetryService() *TelemetryService {
	return &TelemetryService{
		deviceRepo: repo.NewDeviceRepository(),
		logger:     iotplatform.Logger,
		now:        time.Now,
	}
}

// Start subscribes to the telemetry subject of every device
func (slf *TelemetryService) Start(conn *nats.Conn) error {
	subject := devicebus.Wildcard(devicebus.KindTelemetry)
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		if err := slf.Ingest(msg.Subject, msg.Data); err != nil {
			slf.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Telemetry dropped")
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", subject, err)
	}
	slf.sub = sub
	slf.logger.Info().Str("subject", subject).Msg("Telemetry ingest subscribed")
	return nil
}

func (slf *TelemetryService) Stop() {
	if slf.sub == nil {
		return
	}
	if err := slf.sub.Unsubscribe(); err != nil {
		slf.logger.Warn().Err(err).Msg("Telemetry unsubscribe failed")
	}
	slf.sub = nil
}

// Ingest stores the readings of one telemetry message and marks the sender seen.
// Readings without a timestamp are stamped with the receive time.
func (slf *TelemetryService) Ingest(subject string, data []byte) error {
	deviceID, kind, err := devicebus.ParseSubject(subject)
	if err != nil {
		return err
	}
	if kind != devicebus.KindTelemetry {
		return fmt.Errorf("unexpected message kind %q", kind)
	}

	readings, err := devicebus.DecodeTelemetry(data)
	if err != nil {
		return fmt.Errorf("decode telemetry: %w", err)
	}

	if _, err := slf.deviceRepo.FindByID(deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}

	now := slf.now().UTC()
	rows := make([]models.SensorData, 0, len(readings))
	for _, r := range readings {
		if r.SensorType == "" {
			continue
		}
		at := now
		if r.Timestamp != nil {
			at = r.Timestamp.UTC()
		}
		rows = append(rows, models.SensorData{
			DeviceID:   deviceID,
			SensorType: r.SensorType,
			Value:      r.Value,
			Unit:       r.Unit,
			Timestamp:  at,
		})
	}

	if err := slf.deviceRepo.AddReadings(rows); err != nil {
		return fmt.Errorf("store readings: %w", err)
	}
	if err := slf.deviceRepo.MarkSeen(deviceID, now); err != nil {
		return fmt.Errorf("mark device seen: %w", err)
	}

	slf.logger.Debug().Uint("deviceId", deviceID).Int("readings", len(rows)).Msg("Telemetry stored")
	return nil
}
