package realtime

import "iotplatform"

type Config struct {
	NatsURL      string
	JWTSecret    string
	JWTIssuer    string
	RealtimePort string
}

// LoadConfig reads the realtime settings on top of the loaded application config
func LoadConfig() Config {
	app := iotplatform.GetConfig()
	natsURL := app.NatsConfig.URL
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	return Config{
		NatsURL:      natsURL,
		JWTSecret:    app.JWTConfig.Secret,
		JWTIssuer:    app.JWTConfig.Issuer,
		RealtimePort: iotplatform.GetEnv("REALTIME_PORT", ":8081"),
	}
}
