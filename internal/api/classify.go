package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/nerrad567/homehub-core/internal/store"
	"github.com/nerrad567/homehub-core/internal/validation"
)

// operation names a handler action and its client-facing messages.
type operation struct {
	name     string // log field "op", e.g. "devices.get"
	notFound string
	conflict string
	failed   string
}

// classify maps an error to the HTTP status it should produce.
func classify(err error) int {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict), store.IsUniqueViolation(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and writes the classified failure envelope for op.
// id is the resource identifier, or empty for collection operations.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op operation, id string, err error) {
	status := classify(err)
	log := s.logger.With(
		"op", op.name,
		"request_id", r.Context().Value(ctxKeyRequestID),
	)
	if id != "" {
		log = log.With("id", id)
	}
	if claims, ok := claimsFromContext(r.Context()); ok {
		log = log.With("user", claims.Username)
	}

	switch status {
	case http.StatusBadRequest:
		var verrs validation.Errors
		errors.As(err, &verrs)
		log.Info("request rejected", "error", err)
		writeErrorDetails(w, status, msgValidationFailed, verrs)
	case http.StatusNotFound:
		log.Info("resource not found")
		writeError(w, status, op.notFound)
	case http.StatusConflict:
		log.Info("resource conflict", "error", err)
		writeError(w, status, op.conflict)
	default:
		log.Error("store operation failed", "error", err)
		writeError(w, status, op.failed)
	}
}

// Body shape errors. Both answer 400 "Invalid JSON body".
var (
	errTrailingData = errors.New("request body has data after the JSON object")
	errNotObject    = errors.New("request body is not a JSON object")
)

// decodeJSON reads a JSON object request body into dst.
// An empty body leaves dst untouched, as if "{}" had been sent. Anything
// after the object, or a top-level value that is not an object, is an error.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	switch err := dec.Decode(&json.RawMessage{}); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return err
	default:
		return errTrailingData
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return json.Unmarshal(raw, dst)
}

// writeDecodeError answers a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, msgInvalidJSON)
}

// parseID parses a numeric path identifier. Anything that is not a
// positive integer cannot match a row, so callers answer 404.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
