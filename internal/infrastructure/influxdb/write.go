package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by HomeHub.
const (
	MeasurementDeviceStatus = "device_status"
	MeasurementAPIEvents    = "api_events"
)

// WriteDeviceStatus records a device's status at a point in time.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Example:
//
//	client.WriteDeviceStatus(7, "online", time.Now())
func (c *Client) WriteDeviceStatus(deviceID int64, status string, at time.Time) {
	online := 0
	if status == "online" {
		online = 1
	}

	c.WritePointWithTime(MeasurementDeviceStatus,
		map[string]string{"device_id": strconv.FormatInt(deviceID, 10)},
		map[string]interface{}{
			"status": status,
			"online": online,
		},
		at,
	)
}

// WriteEvent counts one change event for an entity and action.
func (c *Client) WriteEvent(entity, action string, at time.Time) {
	c.WritePointWithTime(MeasurementAPIEvents,
		map[string]string{"entity": entity, "action": action},
		map[string]interface{}{"count": 1},
		at,
	)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes a custom point with a specific timestamp.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
