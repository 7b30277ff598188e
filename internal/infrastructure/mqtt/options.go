package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/homehub-core/internal/infrastructure/config"
)

const (
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = 5 * time.Second
	defaultKeepAlive      = 60 * time.Second

	// disconnectQuiesceMillis lets in-flight publishes finish on Close.
	disconnectQuiesceMillis = 1000

	// Fallbacks when mqtt.reconnect is left at zero.
	fallbackRetryDelay   = time.Second
	fallbackMaxRetryWait = time.Minute

	maxQoS        = 2
	tlsMinVersion = tls.VersionTLS12
)

// Reasons carried in the retained system status message.
const (
	reasonUnexpected = "unexpected_disconnect"
	reasonShutdown   = "graceful_shutdown"
)

// systemStatus is the retained payload on Topics.SystemStatus. Dashboards
// read it to tell whether the hub is up.
type systemStatus struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}

// statusPayload encodes the system status for clientID.
// reason is empty for "online".
func statusPayload(status, clientID, reason string) []byte {
	b, _ := json.Marshal(systemStatus{ //nolint:errcheck // plain strings always encode
		Status:    status,
		ClientID:  clientID,
		Reason:    reason,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return b
}

// brokerURL renders the broker address, ssl:// when TLS is on.
func brokerURL(b config.MQTTBrokerConfig) string {
	scheme := "tcp"
	if b.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, b.Host, b.Port)
}

// secondsOr converts a config value in seconds, using fallback for zero.
func secondsOr(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// buildClientOptions maps the mqtt config section onto paho options.
// Sessions are clean: subscriptions are replayed by the Client itself.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL(cfg.Broker)).
		SetClientID(cfg.Broker.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(secondsOr(cfg.Reconnect.InitialDelay, fallbackRetryDelay)).
		SetMaxReconnectInterval(secondsOr(cfg.Reconnect.MaxDelay, fallbackMaxRetryWait)).
		SetConnectTimeout(defaultConnectTimeout).
		SetKeepAlive(defaultKeepAlive)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}
	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}
	return opts
}

// configureLWT makes the broker publish an "offline" system status if the
// hub drops without calling Close. QoS 1, retained.
func configureLWT(opts *pahomqtt.ClientOptions, topics Topics, clientID string) {
	opts.SetBinaryWill(topics.SystemStatus(), statusPayload("offline", clientID, reasonUnexpected), 1, true)
}
