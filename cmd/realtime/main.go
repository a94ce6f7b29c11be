package main

import (
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/repo"
	"iotplatform/internal/realtime"
)

func main() {
	iotplatform.InitConfig(".env")
	logger := iotplatform.Logger

	cfg := realtime.LoadConfig()

	devices := repo.NewDeviceRepository()
	authorize := func(userID, deviceID uint) bool {
		_, err := devices.FindOwned(deviceID, userID)
		return err == nil
	}

	hub := realtime.NewHub(authorize, logger)
	go hub.Run()

	bridge, err := realtime.NewNATSBridge(cfg.NatsURL, hub, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("NATS bridge")
	}
	defer bridge.Close()

	if err := bridge.Subscribe(); err != nil {
		logger.Fatal().Err(err).Msg("NATS subscribe")
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, cfg, w, r)
	})

	logger.Info().Str("addr", cfg.RealtimePort).Msg("Realtime service listening")
	if err := http.ListenAndServe(cfg.RealtimePort, nil); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
}
