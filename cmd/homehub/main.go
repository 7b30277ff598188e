// HomeHub Core - home device management backend
//
// This is the main entry point for the HomeHub Core service. It serves a
// REST API over devices, users and settings, relays change events to
// WebSocket clients, MQTT and InfluxDB, and ingests device status updates
// published on MQTT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/homehub-core/internal/api"
	"github.com/nerrad567/homehub-core/internal/auth"
	"github.com/nerrad567/homehub-core/internal/device"
	"github.com/nerrad567/homehub-core/internal/events"
	"github.com/nerrad567/homehub-core/internal/infrastructure/config"
	"github.com/nerrad567/homehub-core/internal/infrastructure/database"
	"github.com/nerrad567/homehub-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/homehub-core/internal/infrastructure/logging"
	"github.com/nerrad567/homehub-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/homehub-core/internal/setting"
	"github.com/nerrad567/homehub-core/internal/store"
	"github.com/nerrad567/homehub-core/internal/telemetry"
	"github.com/nerrad567/homehub-core/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// eventQueueSize bounds the change-event backlog before events are dropped.
const eventQueueSize = 1024

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It blocks until ctx is cancelled, then shuts components down in reverse
// start order: HTTP server, MQTT status ingestion, event bus, InfluxDB,
// MQTT, database.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HomeHub Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		DSN:          cfg.Database.DSN,
		WALMode:      cfg.Database.WALMode,
		BusyTimeout:  cfg.Database.BusyTimeout,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "driver", db.Driver())

	if migrateErr := db.Migrate(ctx, migrations.FS); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	q := store.New(db, store.Dialect(db.Driver()))
	deviceRepo := device.NewSQLRepository(q)
	userRepo := auth.NewUserRepository(q)
	settingRepo := setting.NewSQLRepository(q)

	if cfg.Database.Seed {
		if seedErr := seed(ctx, cfg, deviceRepo, userRepo, settingRepo, log); seedErr != nil {
			return fmt.Errorf("seeding database: %w", seedErr)
		}
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		mqttClient.SetLogger(log)
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Change events: websocket always, MQTT and InfluxDB when enabled
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	bus := events.NewBus(eventQueueSize, log.Logger)
	bus.AddSink("websocket", events.HubSink(hub))
	if mqttClient != nil {
		bus.AddSink("mqtt", events.MQTTSink(mqttClient))
	}
	if influxClient != nil {
		bus.AddSink("influxdb", events.InfluxSink(influxClient))
	}

	// The bus outlives the HTTP server so in-flight requests can still
	// publish; it drains its queue after the server has stopped.
	busCtx, stopBus := context.WithCancel(context.Background())
	busDone := make(chan struct{})
	go func() {
		bus.Run(busCtx)
		close(busDone)
	}()
	defer func() {
		stopBus()
		<-busDone
		if n := bus.Dropped(); n > 0 {
			log.Warn("change events dropped during run", "dropped", n)
		}
	}()

	// Device status ingestion from MQTT
	if mqttClient != nil {
		ingestor := telemetry.NewStatusIngestor(deviceRepo, bus, mqttClient.Topics())
		topic := mqttClient.Topics().AllDeviceStatuses()
		if subErr := mqttClient.Subscribe(topic, mqttClient.QoS(), ingestor.Handle); subErr != nil {
			return fmt.Errorf("subscribing to device status: %w", subErr)
		}
		// Runs before the bus stops.
		defer func() {
			if unsubErr := mqttClient.Unsubscribe(topic); unsubErr != nil {
				log.Warn("error unsubscribing from device status", "error", unsubErr)
			}
		}()
		log.Info("device status ingestion enabled", "topic", topic)
	}

	// Start HTTP API server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		DB:       db,
		Devices:  deviceRepo,
		Users:    userRepo,
		Settings: settingRepo,
		Events:   bus,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("HomeHub Core started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"auth_required", cfg.Security.RequireAuth,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

// seed fills an empty database with the sample users, devices and settings.
// Nothing is written when any user already exists.
func seed(ctx context.Context, cfg *config.Config, devices device.Repository, users auth.UserRepository, settings setting.Repository, log *logging.Logger) error {
	seeded, err := auth.SeedUsers(ctx, users, cfg.Security.BcryptCost, log.Logger)
	if err != nil {
		return err
	}
	if !seeded {
		return nil
	}

	if err := device.Seed(ctx, devices); err != nil {
		return err
	}
	if err := setting.Seed(ctx, settings); err != nil {
		return err
	}
	log.Info("sample data seeded",
		"devices", len(device.SampleDevices),
		"settings", len(setting.Defaults),
	)
	return nil
}

// getConfigPath returns the configuration file path.
// Checks HOMEHUB_CONFIG environment variable first, then uses default.
func getConfigPath() string {
	if path := os.Getenv("HOMEHUB_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
