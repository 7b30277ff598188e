// Package api implements the HTTP REST API and WebSocket server for HomeHub Core.
//
// This package provides:
//   - REST endpoints for devices, users and settings under /api
//   - A uniform JSON envelope: {success, data?, error?, message?, details?}
//   - An error classifier mapping store errors to HTTP status and message
//   - A health endpoint reporting store connectivity and uptime
//   - JWT login and an optional bearer-token gate on mutating routes
//   - Per-client rate limiting, CORS, request IDs and panic recovery
//   - A WebSocket hub relaying change events to subscribed clients
//   - The embedded dashboard with SPA fallback
//
// # Request Flow
//
// A handler decodes the body, validates it when the resource requires it,
// issues exactly one repository call and writes either the envelope with
// data or a classified failure. Raw store errors only reach the log.
//
// # Change Events
//
// Successful writes publish an events.Event. Publishing never blocks the
// request; the bus fans events out to the hub, MQTT and InfluxDB.
package api
