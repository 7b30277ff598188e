package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/homehub-core/internal/device"
	"github.com/nerrad567/homehub-core/internal/events"
	"github.com/nerrad567/homehub-core/internal/infrastructure/mqtt"
)

type fakeDevices struct {
	calls  int
	id     int64
	status string
	err    error
}

func (f *fakeDevices) SetStatus(_ context.Context, id int64, status string) (*device.Device, error) {
	f.calls++
	f.id, f.status = id, status
	if f.err != nil {
		return nil, f.err
	}
	return &device.Device{ID: id, Status: &status}, nil
}

type capturePublisher struct {
	events []events.Event
}

func (c *capturePublisher) Publish(e events.Event) { c.events = append(c.events, e) }

func TestHandle_UpdatesStatusAndPublishes(t *testing.T) {
	devices := &fakeDevices{}
	pub := &capturePublisher{}
	ing := NewStatusIngestor(devices, pub, mqtt.NewTopics("homehub"))

	err := ing.Handle("homehub/devices/12/status", []byte(`{"status":" online "}`))
	require.NoError(t, err)

	assert.Equal(t, int64(12), devices.id)
	assert.Equal(t, "online", devices.status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "device.updated", pub.events[0].Type)
	assert.Equal(t, "12", pub.events[0].ID)
}

func TestHandle_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		payload string
		want    error
	}{
		{"foreign topic", "other/devices/1/status", `{"status":"online"}`, ErrBadTopic},
		{"non-numeric id", "homehub/devices/lamp/status", `{"status":"online"}`, ErrBadTopic},
		{"zero id", "homehub/devices/0/status", `{"status":"online"}`, ErrBadTopic},
		{"not json", "homehub/devices/1/status", `online`, ErrBadPayload},
		{"empty status", "homehub/devices/1/status", `{"status":""}`, ErrBadPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := &fakeDevices{}
			pub := &capturePublisher{}
			ing := NewStatusIngestor(devices, pub, mqtt.NewTopics("homehub"))

			err := ing.Handle(tt.topic, []byte(tt.payload))
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, devices.calls)
			assert.Empty(t, pub.events)
		})
	}
}

func TestHandle_UnknownDevice(t *testing.T) {
	devices := &fakeDevices{err: device.ErrDeviceNotFound}
	pub := &capturePublisher{}
	ing := NewStatusIngestor(devices, pub, mqtt.NewTopics("homehub"))

	err := ing.Handle("homehub/devices/404/status", []byte(`{"status":"online"}`))
	assert.True(t, errors.Is(err, device.ErrDeviceNotFound))
	assert.Empty(t, pub.events)
}
