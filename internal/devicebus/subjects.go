// Package devicebus names the message bus subjects shared by the API, the
// devices and the realtime service, and the payloads carried on them.
package devicebus

import (
	"fmt"
	"strconv"
	"strings"
)

// Message kinds, the last token of every device subject
const (
	KindUpload    = "upload"
	KindStatus    = "status"
	KindTelemetry = "telemetry"
)

const subjectRoot = "devices"

// Subject returns devices.<id>.<kind>
func Subject(deviceID uint, kind string) string {
	return fmt.Sprintf("%s.%d.%s", subjectRoot, deviceID, kind)
}

// Wildcard returns the subject matching kind for every device
func Wildcard(kind string) string {
	return fmt.Sprintf("%s.*.%s", subjectRoot, kind)
}

// ParseSubject extracts the device id and kind from devices.<id>.<kind>
func ParseSubject(subject string) (uint, string, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 || parts[0] != subjectRoot {
		return 0, "", fmt.Errorf("unexpected subject %q", subject)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil || id == 0 {
		return 0, "", fmt.Errorf("invalid device id %q in subject", parts[1])
	}
	return uint(id), parts[2], nil
}
