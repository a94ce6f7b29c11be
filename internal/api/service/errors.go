package service

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrModelNotFound    = errors.New("model not found")
	ErrTutorialNotFound = errors.New("tutorial not found")

	// ErrBusUnavailable is returned when a device action needs the message bus and none is configured
	ErrBusUnavailable  = errors.New("device message bus unavailable")
	ErrNothingToUpload = errors.New("no code to upload")
)
