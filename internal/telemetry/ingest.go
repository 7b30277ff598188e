package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nerrad567/homehub-core/internal/device"
	"github.com/nerrad567/homehub-core/internal/events"
	"github.com/nerrad567/homehub-core/internal/infrastructure/mqtt"
)

// Ingestion limits.
const (
	maxStatusLength = 64
	handleTimeout   = 5 * time.Second
)

// Errors returned by Handle. The MQTT client logs them; nothing is retried.
var (
	ErrBadTopic   = errors.New("telemetry: unexpected topic")
	ErrBadPayload = errors.New("telemetry: invalid status payload")
)

// StatusUpdater is the subset of device.Repository used for ingestion.
type StatusUpdater interface {
	SetStatus(ctx context.Context, id int64, status string) (*device.Device, error)
}

// statusMessage is the payload published on a device status topic.
type statusMessage struct {
	Status string `json:"status"`
}

// StatusIngestor applies device status reports.
type StatusIngestor struct {
	devices StatusUpdater
	events  events.Publisher
	topics  mqtt.Topics
}

// NewStatusIngestor creates an ingestor for topics under the given builder.
func NewStatusIngestor(devices StatusUpdater, publisher events.Publisher, topics mqtt.Topics) *StatusIngestor {
	if publisher == nil {
		publisher = events.Discard
	}
	return &StatusIngestor{devices: devices, events: publisher, topics: topics}
}

// Handle is an mqtt.MessageHandler for <prefix>/devices/+/status.
func (s *StatusIngestor) Handle(topic string, payload []byte) error {
	rawID, ok := s.topics.DeviceIDFromStatusTopic(topic)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadTopic, topic)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: device id %q", ErrBadTopic, rawID)
	}

	var msg statusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	status := strings.TrimSpace(msg.Status)
	if status == "" || len(status) > maxStatusLength {
		return fmt.Errorf("%w: status must be 1-%d characters", ErrBadPayload, maxStatusLength)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	d, err := s.devices.SetStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("updating device %d status: %w", id, err)
	}

	s.events.Publish(events.New(events.EntityDevice, events.ActionUpdated, rawID, d))
	return nil
}
