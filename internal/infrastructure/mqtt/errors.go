package mqtt

import "errors"

// Sentinel errors. Wrapped errors keep these as their root so callers can
// branch with errors.Is.
var (
	ErrNotConnected     = errors.New("mqtt: broker not connected")
	ErrConnectionFailed = errors.New("mqtt: could not reach broker")
	ErrPublishFailed    = errors.New("mqtt: publish rejected")

	// ErrSubscribeFailed covers both subscribe and unsubscribe round trips.
	ErrSubscribeFailed = errors.New("mqtt: subscription change rejected")

	ErrInvalidQoS   = errors.New("mqtt: qos must be 0, 1 or 2")
	ErrInvalidTopic = errors.New("mqtt: empty topic")
)
