// Package telemetry ingests device status reports from MQTT.
//
// Devices (or their bridges) publish {"status":"online"} on
// <prefix>/devices/<id>/status. Each message updates the device row in a
// single statement and emits a device.updated event.
package telemetry
