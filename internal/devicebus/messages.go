package devicebus

import (
	"encoding/json"
	"time"
)

// Publisher is the part of a bus connection used to emit device messages.
// *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// UploadMessage carries generated code to a device
type UploadMessage struct {
	DeviceID  uint      `json:"deviceId"`
	ProjectID *uint     `json:"projectId,omitempty"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	RequestID string    `json:"requestId,omitempty"`
	SentAt    time.Time `json:"sentAt"`
}

// StatusEvent reports a device status change
type StatusEvent struct {
	DeviceID uint      `json:"deviceId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

// Reading is one sensor sample
type Reading struct {
	SensorType string     `json:"sensorType"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// TelemetryMessage is what devices publish on their telemetry subject.
// A single reading may be sent bare instead of wrapped in Readings.
type TelemetryMessage struct {
	Readings []Reading `json:"readings"`
}

// DecodeTelemetry accepts either a TelemetryMessage or a single Reading
func DecodeTelemetry(data []byte) ([]Reading, error) {
	var msg TelemetryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if len(msg.Readings) > 0 {
		return msg.Readings, nil
	}

	var single Reading
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	if single.SensorType == "" {
		return nil, nil
	}
	return []Reading{single}, nil
}

// Publish JSON-encodes v and publishes it on the device subject for kind
func Publish(p Publisher, deviceID uint, kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(Subject(deviceID, kind), data)
}
