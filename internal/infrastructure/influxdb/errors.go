package influxdb

import "errors"

// Sentinel errors returned by Connect and HealthCheck. Point writes are
// asynchronous and report failures through SetOnError instead.
var (
	// ErrDisabled means influxdb.enabled is false; callers run without history.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	ErrConnectionFailed = errors.New("influxdb: server unreachable or unhealthy")
	ErrNotConnected     = errors.New("influxdb: not connected")
)
