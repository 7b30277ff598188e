// Package mqtt provides MQTT client connectivity for HomeHub Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//
// # Topics
//
// Every topic lives under the configured prefix (default "homehub"):
//
//	homehub/system/status              retained online/offline status
//	homehub/devices/{id}/status        inbound device status reports
//	homehub/events/{entity}/{action}   outbound change events
//
// # Security Considerations
//
//   - Enable TLS (cfg.Broker.TLS=true) whenever the broker is not on localhost
//   - Credentials are validated against broker ACL
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe(client.Topics().AllDeviceStatuses(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
package mqtt
