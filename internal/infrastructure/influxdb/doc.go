// Package influxdb records device status history in InfluxDB v2.
//
// Writes are non-blocking and batched by the client library. Async write
// failures are reported through SetOnError. When influxdb.enabled is false,
// Connect returns ErrDisabled and the caller simply runs without history.
//
// Measurements:
//
//	device_status  tags: device_id        fields: status (string), online (0/1)
//	api_events     tags: entity, action   fields: count
package influxdb
