package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicPrefix is used when config leaves mqtt.topic_prefix empty.
const DefaultTopicPrefix = "homehub"

// Topics builds HomeHub MQTT topics under a configurable prefix.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.NewTopics("homehub")
//	topics.Event("device", "updated")
//	// Returns: "homehub/events/device/updated"
type Topics struct {
	Prefix string
}

// NewTopics returns a topic builder for prefix, falling back to DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{Prefix: prefix}
}

// SystemStatus returns the retained online/offline status topic.
//
// Example: homehub/system/status
func (t Topics) SystemStatus() string {
	return fmt.Sprintf("%s/system/status", t.Prefix)
}

// AllDeviceStatuses returns a pattern matching every device status topic.
// Devices report on <prefix>/devices/<id>/status.
//
// Pattern: homehub/devices/+/status
func (t Topics) AllDeviceStatuses() string {
	return fmt.Sprintf("%s/devices/+/status", t.Prefix)
}

// Event returns the topic for a change event.
//
// Example: homehub/events/setting/upserted
func (t Topics) Event(entity, action string) string {
	return fmt.Sprintf("%s/events/%s/%s", t.Prefix, entity, action)
}

// DeviceIDFromStatusTopic extracts the device ID from a topic matched by
// AllDeviceStatuses.
// Returns false if topic does not have the expected shape.
func (t Topics) DeviceIDFromStatusTopic(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/devices/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/status")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
