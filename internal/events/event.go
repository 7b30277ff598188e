package events

import "time"

// Entities that emit events.
const (
	EntityDevice  = "device"
	EntityUser    = "user"
	EntitySetting = "setting"
)

// Actions recorded on events.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionUpserted = "upserted"
)

// Event describes one successful change.
type Event struct {
	// Type is "<entity>.<action>", e.g. "device.updated".
	Type      string    `json:"type"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New builds an Event stamped with the current UTC time.
func New(entity, action, id string, data any) Event {
	return Event{
		Type:      entity + "." + action,
		Entity:    entity,
		Action:    action,
		ID:        id,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher accepts events without blocking.
type Publisher interface {
	Publish(e Event)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
