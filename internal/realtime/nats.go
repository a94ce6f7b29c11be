package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"iotplatform/internal/devicebus"
)

// Outgoing message types
const (
	TypeTelemetry = "device.telemetry"
	TypeStatus    = "device.status"
)

// NATSBridge subscribes to device subjects and pushes messages into the Hub.
type NATSBridge struct {
	conn   *nats.Conn
	hub    *Hub
	logger zerolog.Logger
}

func NewNATSBridge(natsURL string, hub *Hub, logger zerolog.Logger) (*NATSBridge, error) {
	nc, err := nats.Connect(natsURL, nats.Name("iotplatform-realtime"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATSBridge{conn: nc, hub: hub, logger: logger}, nil
}

// Subscribe listens for telemetry and status messages of every device
func (b *NATSBridge) Subscribe() error {
	for _, kind := range []string{devicebus.KindTelemetry, devicebus.KindStatus} {
		subject := devicebus.Wildcard(kind)
		_, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
			deviceID, data, err := envelope(msg.Subject, msg.Data)
			if err != nil {
				b.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("Device message skipped")
				return
			}
			b.hub.Broadcast(deviceID, data)
		})
		if err != nil {
			return fmt.Errorf("nats subscribe %q: %w", subject, err)
		}
		b.logger.Info().Str("subject", subject).Msg("NATS bridge subscribed")
	}
	return nil
}

// Close drains the NATS connection.
func (b *NATSBridge) Close() {
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn().Err(err).Msg("NATS drain failed")
	}
}

// envelope wraps a raw device payload in the message sent to websocket clients
func envelope(subject string, payload []byte) (uint, []byte, error) {
	deviceID, kind, err := devicebus.ParseSubject(subject)
	if err != nil {
		return 0, nil, err
	}

	var typ string
	switch kind {
	case devicebus.KindTelemetry:
		typ = TypeTelemetry
	case devicebus.KindStatus:
		typ = TypeStatus
	default:
		return 0, nil, fmt.Errorf("unexpected message kind %q", kind)
	}
	if !json.Valid(payload) {
		return 0, nil, fmt.Errorf("payload is not JSON")
	}

	data, err := json.Marshal(outgoingMsg{Type: typ, DeviceID: deviceID, Payload: json.RawMessage(payload)})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return deviceID, data, nil
}
