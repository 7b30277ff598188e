package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homehub-core/internal/device"
	"github.com/nerrad567/homehub-core/internal/events"
)

var (
	opListDevices  = operation{name: "devices.list", failed: "Failed to fetch devices"}
	opGetDevice    = operation{name: "devices.get", notFound: "Device not found", failed: "Failed to fetch device"}
	opCreateDevice = operation{name: "devices.create", conflict: "Device already exists", failed: "Failed to create device"}
	opUpdateDevice = operation{name: "devices.update", notFound: "Device not found", failed: "Failed to update device"}
	opDeleteDevice = operation{name: "devices.delete", notFound: "Device not found", failed: "Failed to delete device"}
)

const msgDeviceDeleted = "Device deleted successfully"

// handleListDevices returns all devices ordered by ID.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.devices.List(r.Context())
	if err != nil {
		s.fail(w, r, opListDevices, "", err)
		return
	}
	writeData(w, http.StatusOK, devices)
}

// handleGetDevice returns a single device by ID.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeError(w, http.StatusNotFound, opGetDevice.notFound)
		return
	}

	dev, err := s.devices.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, opGetDevice, raw, err)
		return
	}
	writeData(w, http.StatusOK, dev)
}

// handleCreateDevice creates a device. Status defaults to "offline".
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var in device.Input
	if err := decodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	dev, err := s.devices.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, opCreateDevice, "", err)
		return
	}

	s.publish(events.EntityDevice, events.ActionCreated, dev.ID, dev)
	writeData(w, http.StatusCreated, dev)
}

// handleUpdateDevice replaces every mutable field of a device.
// Fields missing from the body are stored as NULL.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeError(w, http.StatusNotFound, opUpdateDevice.notFound)
		return
	}

	var in device.Input
	if err := decodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	dev, err := s.devices.Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, opUpdateDevice, raw, err)
		return
	}

	s.publish(events.EntityDevice, events.ActionUpdated, dev.ID, dev)
	writeData(w, http.StatusOK, dev)
}

// handleDeleteDevice removes a device.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeError(w, http.StatusNotFound, opDeleteDevice.notFound)
		return
	}

	if err := s.devices.Delete(r.Context(), id); err != nil {
		s.fail(w, r, opDeleteDevice, raw, err)
		return
	}

	s.publish(events.EntityDevice, events.ActionDeleted, id, nil)
	writeMessage(w, http.StatusOK, msgDeviceDeleted)
}

// publish emits a change event for a numeric entity ID.
func (s *Server) publish(entity, action string, id int64, data any) {
	s.events.Publish(events.New(entity, action, strconv.FormatInt(id, 10), data))
}
