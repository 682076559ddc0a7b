package audit

import "errors"

var (
	// ErrEventValidation is returned for events missing required fields.
	ErrEventValidation = errors.New("audit.event_validation_failed")
	// ErrStoreFailed is returned when a sink cannot persist an event.
	ErrStoreFailed = errors.New("audit.store_failed")
	// ErrRecorderClosed is returned when recording after Close.
	ErrRecorderClosed = errors.New("audit.recorder_closed")
)
