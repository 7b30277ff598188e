// Package events carries change notifications from the REST handlers to
// outward-facing sinks (websocket clients, MQTT, InfluxDB).
//
// Handlers call Publish after a successful write. Publish never blocks: the
// event is queued for the Bus worker, or dropped with a warning when the
// queue is full. The worker hands each event to every sink in registration
// order; a failing sink is logged and does not affect the others.
//
//	bus := events.NewBus(256, logger)
//	bus.AddSink("websocket", events.HubSink(hub))
//	bus.AddSink("mqtt", events.MQTTSink(mqttClient))
//	go bus.Run(ctx)
//
//	bus.Publish(events.New(events.EntityDevice, events.ActionCreated, "7", d))
package events
