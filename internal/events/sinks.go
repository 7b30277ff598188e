package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/homehub-core/internal/device"
	"github.com/nerrad567/homehub-core/internal/infrastructure/mqtt"
)

// Broadcaster is implemented by the websocket hub.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// HubSink forwards events to websocket clients subscribed to the event type.
func HubSink(hub Broadcaster) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		hub.Broadcast(e.Type, e)
		return nil
	})
}

// MQTTPublisher is implemented by *mqtt.Client.
type MQTTPublisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Topics() mqtt.Topics
	QoS() byte
}

// MQTTSink publishes each event as JSON on <prefix>/events/<entity>/<action>.
func MQTTSink(client MQTTPublisher) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding event: %w", err)
		}
		return client.Publish(client.Topics().Event(e.Entity, e.Action), payload, client.QoS(), false)
	})
}

// HistoryWriter is implemented by *influxdb.Client.
type HistoryWriter interface {
	WriteEvent(entity, action string, at time.Time)
	WriteDeviceStatus(deviceID int64, status string, at time.Time)
}

// InfluxSink counts every event and records device status for device
// creates and updates that carry a status.
func InfluxSink(w HistoryWriter) Sink {
	return SinkFunc(func(_ context.Context, e Event) error {
		w.WriteEvent(e.Entity, e.Action, e.Timestamp)

		if e.Entity != EntityDevice || e.Action == ActionDeleted {
			return nil
		}
		d, ok := e.Data.(*device.Device)
		if !ok || d == nil || d.Status == nil {
			return nil
		}
		w.WriteDeviceStatus(d.ID, *d.Status, e.Timestamp)
		return nil
	})
}
