package influxdb_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/homehub-core/internal/infrastructure/config"
	"github.com/nerrad567/homehub-core/internal/infrastructure/influxdb"
)

// fakeInflux answers /ping and records line-protocol bodies posted to /api/v2/write.
type fakeInflux struct {
	mu    sync.Mutex
	lines []string
	query []string
}

func (f *fakeInflux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/ping"):
		w.WriteHeader(http.StatusNoContent)
	case strings.HasSuffix(r.URL.Path, "/write"):
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lines = append(f.lines, strings.Split(strings.TrimSpace(string(body)), "\n")...)
		f.query = append(f.query, r.URL.RawQuery)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeInflux) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

// waitForLines polls until n lines have arrived or the deadline passes.
func (f *fakeInflux) waitForLines(n int) []string {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lines := f.written(); len(lines) >= n {
			return lines
		}
		time.Sleep(10 * time.Millisecond)
	}
	return f.written()
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "homehub-test-token",
		Org:           "homehub",
		Bucket:        "history",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func connect(t *testing.T) (*influxdb.Client, *fakeInflux) {
	t.Helper()

	fake := &fakeInflux{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := influxdb.Connect(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // Test cleanup
	return client, fake
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect(t *testing.T) {
	client, _ := connect(t)

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Enabled = false

	_, err := influxdb.Connect(context.Background(), cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := influxdb.Connect(context.Background(), testConfig(url))
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

// =============================================================================
// Write Tests
// =============================================================================

func TestWriteDeviceStatus(t *testing.T) {
	client, fake := connect(t)

	at := time.Unix(1700000000, 0)
	client.WriteDeviceStatus(7, "online", at)
	client.Flush()

	lines := fake.waitForLines(1)
	if len(lines) != 1 {
		t.Fatalf("written lines = %v, want 1", lines)
	}

	line := lines[0]
	for _, want := range []string{"device_status,device_id=7 ", `status="online"`, "online=1i", "1700000000000000000"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	fake.mu.Lock()
	query := fake.query[0]
	fake.mu.Unlock()
	if !strings.Contains(query, "bucket=history") {
		t.Errorf("write query = %q, want bucket=history", query)
	}
}

func TestWriteEvent(t *testing.T) {
	client, fake := connect(t)

	client.WriteEvent("setting", "upserted", time.Now())
	client.Flush()

	lines := fake.waitForLines(1)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "api_events,action=upserted,entity=setting count=1i") {
		t.Errorf("written lines = %v", lines)
	}
}

func TestClose_StopsWrites(t *testing.T) {
	client, fake := connect(t)

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}

	client.WriteDeviceStatus(1, "offline", time.Now())
	client.Flush()

	if lines := fake.written(); len(lines) != 0 {
		t.Errorf("writes after Close() = %v", lines)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close() error = %v", err)
	}
}

func TestClose_Nil(t *testing.T) {
	var client influxdb.Client
	if err := client.Close(); err != nil {
		t.Errorf("Close() on zero client error = %v", err)
	}
}
