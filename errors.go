package dx12

import "errors"

// Package errors for the dx12 backend.
var (
	// ErrTooManyObjects is returned when an adapter that already has an
	// open logical device is opened again.
	ErrTooManyObjects = errors.New("dx12: too many objects")

	// ErrMissingFeature is returned when Open requests a feature the
	// adapter does not advertise. No native device is created.
	ErrMissingFeature = errors.New("dx12: missing feature")

	// ErrDeviceCreationFailed is returned when native device creation fails.
	ErrDeviceCreationFailed = errors.New("dx12: device creation failed")

	// ErrHostExecution is returned when a host-side queue wait fails.
	ErrHostExecution = errors.New("dx12: host execution failure")

	// ErrWaitTimeout is returned by bounded idle waits that expire before
	// the queue drains.
	ErrWaitTimeout = errors.New("dx12: wait timed out")
)
