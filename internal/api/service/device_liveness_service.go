package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"iotplatform"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/devicebus"
)

const (
	defaultOfflineAfter  = 2 * time.Minute
	defaultSweepInterval = 30 * time.Second
)

// DeviceLivenessService marks devices offline once they stop reporting
type DeviceLivenessService struct {
	deviceRepo *repo.DeviceRepository
	bus        devicebus.Publisher
	logger     zerolog.Logger
	now        func() time.Time

	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workerPool chan struct{}

	maxWorkers     int
	offlineAfter   time.Duration
	dispatchPeriod time.Duration
}

func NewDeviceLivenessService(maxWorkers int) *DeviceLivenessService {
	cfg := iotplatform.GetConfig().DeviceConfig
	if cfg.OfflineAfter <= 0 {
		cfg.OfflineAfter = defaultOfflineAfter
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DeviceLivenessService{
		deviceRepo:     repo.NewDeviceRepository(),
		bus:            busPublisher(),
		logger:         iotplatform.Logger,
		now:            time.Now,
		ctx:            ctx,
		cancel:         cancel,
		workerPool:     make(chan struct{}, maxWorkers),
		maxWorkers:     maxWorkers,
		offlineAfter:   cfg.OfflineAfter,
		dispatchPeriod: cfg.SweepInterval,
	}
}

// Start begins the sweep dispatcher
func (slf *DeviceLivenessService) Start() {
	slf.logger.Info().Int("maxWorkers", slf.maxWorkers).Dur("offlineAfter", slf.offlineAfter).Msg("Starting device liveness service")
	go slf.dispatcher()
}

// Stop waits for running sweeps to finish
func (slf *DeviceLivenessService) Stop() {
	slf.logger.Info().Msg("Stopping device liveness service")
	slf.cancel()
	slf.wg.Wait()
	slf.logger.Info().Msg("Device liveness service stopped")
}

func (slf *DeviceLivenessService) dispatcher() {
	defer func() {
		if r := recover(); r != nil {
			slf.logger.Error().Interface("panic", r).Msg("Liveness dispatcher panicked, restarting")
			go slf.dispatcher()
		}
	}()

	slf.dispatchWork()

	ticker := time.NewTicker(slf.dispatchPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-slf.ctx.Done():
			return
		case <-ticker.C:
			slf.dispatchWork()
		}
	}
}

// dispatchWork finds stale online devices and hands each to a worker
func (slf *DeviceLivenessService) dispatchWork() {
	cutoff := slf.now().UTC().Add(-slf.offlineAfter)
	devices, err := slf.deviceRepo.FindStaleOnline(cutoff)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error fetching stale devices")
		return
	}
	if len(devices) == 0 {
		return
	}

	slf.logger.Debug().Int("count", len(devices)).Msg("Stale devices found")
	for _, device := range devices {
		select {
		case slf.workerPool <- struct{}{}:
			slf.wg.Add(1)
			go slf.markOffline(device, cutoff)
		default:
			slf.logger.Warn().Uint("deviceId", device.ID).Msg("Workers busy, device left for next sweep")
		}
	}
}

// markOffline re-checks staleness in the update, so a device seen since the
// sweep stays online.
func (slf *DeviceLivenessService) markOffline(device models.Device, cutoff time.Time) {
	defer func() {
		<-slf.workerPool
		slf.wg.Done()
	}()

	changed, err := slf.deviceRepo.MarkOfflineIfStale(device.ID, cutoff)
	if err != nil {
		slf.logger.Error().Err(err).Uint("deviceId", device.ID).Msg("Error marking device offline")
		return
	}
	if !changed {
		slf.logger.Debug().Uint("deviceId", device.ID).Msg("Device reported during sweep, left online")
		return
	}
	slf.logger.Info().Uint("deviceId", device.ID).Msg("Device went offline")

	if slf.bus == nil {
		return
	}
	event := devicebus.StatusEvent{DeviceID: device.ID, Status: string(models.DeviceOffline)}
	if device.LastSeen != nil {
		event.LastSeen = *device.LastSeen
	}
	if err := devicebus.Publish(slf.bus, device.ID, devicebus.KindStatus, event); err != nil {
		slf.logger.Warn().Err(err).Uint("deviceId", device.ID).Msg("Error publishing device status")
	}
}
