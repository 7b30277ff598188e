package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every /api response except health.
//
// Success responses never carry Error; failures never carry Data.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Fixed client-facing messages shared across resources.
const (
	msgValidationFailed = "Validation failed"
	msgInvalidJSON      = "Invalid JSON body"
	msgBodyTooLarge     = "Request body too large"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
	msgTooManyRequests  = "Too many requests, please try again later."
	msgUnauthorized     = "Authentication required"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeData writes a success envelope carrying data.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// writeMessage writes a success envelope carrying only an acknowledgement.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: true, Message: message})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}

// writeErrorDetails writes a failure envelope with per-field details.
func writeErrorDetails(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, Envelope{Success: false, Error: message, Details: details})
}
