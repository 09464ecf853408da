// HEIMDALL - Mission Feasibility Checker
//
// Validates an autonomous aerial vehicle's mission plan before flight:
// geometry, command support, takeoff/landing ordering and vehicle-type
// landing geometry, without ever commanding the vehicle itself.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PossumXI/Asgard/Heimdall/internal/api"
	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/feasibility"
	"github.com/PossumXI/Asgard/Heimdall/internal/geofence"
	"github.com/PossumXI/Asgard/Heimdall/internal/livefeed"
	"github.com/PossumXI/Asgard/Heimdall/internal/mavlinkio"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
	"github.com/PossumXI/Asgard/Heimdall/internal/telemetry"
	"github.com/PossumXI/Asgard/Heimdall/pkg/utils"
)

var (
	httpPort  = flag.Int("http-port", 8097, "HTTP API port")
	logLevel  = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logOutput = flag.String("log-output", "stdout", "Log output: stdout or a file path")

	dbDSN   = flag.String("db-dsn", "", "Postgres DSN for mission_items storage")
	natsURL = flag.String("nats-url", "", "NATS URL for event publication (disabled if empty)")

	mavlinkPort = flag.String("mavlink-port", "", "MAVLink serial port (empty = simulation mode)")
	mavlinkBaud = flag.Int("mavlink-baud", 921600, "MAVLink baud rate")
	simMode     = flag.Bool("sim", true, "Simulation mode: no live serial link to a flight controller")

	vehicleTypeFlag = flag.String("vehicle", "multicopter", "Vehicle type: multicopter, fixed-wing, vtol")
	policyFlag      = flag.String("policy", "none", "Required items policy: none, takeoff, landing, both, parity")

	maxDistFirst   = flag.Float64("max-dist-first-waypoint", 0, "Max distance (m) from home to first waypoint, 0 = unlimited")
	maxDistBetween = flag.Float64("max-dist-between-waypoints", 0, "Max distance (m) between consecutive waypoints, 0 = unlimited")
	defaultAccept  = flag.Float64("default-accept-radius", 10, "Default waypoint acceptance radius (m)")

	replayFile = flag.String("replay", "", "Run a single check against a JSON mission file and exit, instead of starting the HTTP server")
	homeLat    = flag.Float64("replay-home-lat", 0, "Replay mode home latitude")
	homeLon    = flag.Float64("replay-home-lon", 0, "Replay mode home longitude")
	homeAlt    = flag.Float64("replay-home-alt", 0, "Replay mode home altitude AMSL (m)")
)

func main() {
	flag.Parse()

	logger := utils.NewLogger(*logLevel, *logOutput)
	cfg := buildConfig()
	vehicleType := parseVehicleType(*vehicleTypeFlag)

	if *replayFile != "" {
		if err := runReplay(logger, cfg, vehicleType); err != nil {
			logger.WithError(err).Fatal("heimdall: replay failed")
		}
		return
	}

	if err := runServer(logger, cfg, vehicleType); err != nil {
		logger.WithError(err).Fatal("heimdall: server failed")
	}
}

func buildConfig() config.Config {
	return config.Config{
		MaxDistFirstWaypoint:    *maxDistFirst,
		MaxDistBetweenWaypoints: *maxDistBetween,
		Policy:                  parsePolicy(*policyFlag),
		DefaultAcceptRadius:     *defaultAccept,
	}
}

func parsePolicy(s string) config.RequiredPolicy {
	switch s {
	case "takeoff":
		return config.PolicyRequireTakeoff
	case "landing":
		return config.PolicyRequireLanding
	case "both":
		return config.PolicyRequireBoth
	case "parity":
		return config.PolicyRequireParity
	default:
		return config.PolicyNone
	}
}

func parseVehicleType(s string) mission.VehicleType {
	switch s {
	case "fixed-wing":
		return mission.VehicleFixedWing
	case "vtol":
		return mission.VehicleVTOL
	default:
		return mission.VehicleMulticopter
	}
}

// replayResult is what -replay prints to stdout: the feasibility Result
// plus every event that was emitted while reaching it.
type replayResult struct {
	CheckID    string              `json:"check_id"`
	Feasible   bool                `json:"feasible"`
	Warning    bool                `json:"warning"`
	HasTakeoff bool                `json:"has_takeoff"`
	HasLanding bool                `json:"has_landing"`
	ElapsedMS  int64               `json:"elapsed_ms"`
	LegStats   *telemetry.LegStats `json:"leg_stats,omitempty"`
	Events     []events.Event      `json:"events"`
}

// runReplay loads a mission from a JSON file and runs exactly one check
// against it, printing the result to stdout. It needs no database, no
// NATS connection and no live MAVLink link, making it the fastest way to
// validate a mission plan offline before ever persisting it.
func runReplay(logger *logrus.Logger, cfg config.Config, vehicleType mission.VehicleType) error {
	data, err := os.ReadFile(*replayFile)
	if err != nil {
		return fmt.Errorf("heimdall: read replay file: %w", err)
	}

	var items []mission.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("heimdall: parse replay file: %w", err)
	}

	vehicle := mission.VehicleState{
		HomeValid:    true,
		HomeAltValid: true,
		HomeLat:      *homeLat,
		HomeLon:      *homeLon,
		HomeAlt:      *homeAlt,
		Type:         vehicleType,
	}

	sink := &events.MemorySink{}
	checker := feasibility.Checker{
		Items:    storage.NewMemoryReader(items),
		Vehicle:  vehicle,
		Config:   cfg,
		Geofence: geofence.None{},
		Params:   config.MapParamStore(defaultLandParams()),
		Sink:     sink,
		Logger:   logger,
	}

	result := checker.Check(context.Background())

	out := replayResult{
		CheckID:    result.CheckID,
		Feasible:   result.Feasible,
		Warning:    result.Warning,
		HasTakeoff: result.HasTakeoff,
		HasLanding: result.HasLanding,
		ElapsedMS:  result.Elapsed.Milliseconds(),
		LegStats:   result.LegStats,
		Events:     sink.Events,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// runServer wires every collaborator (Postgres storage, NATS events,
// MAVLink parameter/state reader, Prometheus metrics, websocket livefeed)
// and serves the HTTP trigger API until a termination signal arrives.
func runServer(logger *logrus.Logger, cfg config.Config, vehicleType mission.VehicleType) error {
	logger.Info("heimdall: starting mission feasibility service")

	var db *sql.DB
	if *dbDSN != "" {
		var err error
		db, err = sql.Open("postgres", *dbDSN)
		if err != nil {
			return fmt.Errorf("heimdall: open postgres: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		if err := db.PingContext(context.Background()); err != nil {
			return fmt.Errorf("heimdall: ping postgres: %w", err)
		}
	}

	vehicleReader := mavlinkio.NewVehicleStateReader(vehicleType)
	paramStore, err := mavlinkio.NewParamStore(mavlinkio.Config{
		Port:           *mavlinkPort,
		BaudRate:       *mavlinkBaud,
		SimulationMode: *simMode,
	}, defaultLandParams(), logger)
	if err != nil {
		return fmt.Errorf("heimdall: init mavlinkio param store: %w", err)
	}
	defer paramStore.Close()

	broadcaster := livefeed.NewBroadcaster(logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go broadcaster.Run(ctx)

	sinks := events.Multi{broadcaster}
	if *natsURL != "" {
		natsSink, err := events.NewNatsSink(events.NatsSinkConfig{URL: *natsURL, ReconnectWait: events.DefaultNatsSinkConfig().ReconnectWait, MaxReconnects: events.DefaultNatsSinkConfig().MaxReconnects}, "heimdall", logger)
		if err != nil {
			logger.WithError(err).Warn("heimdall: NATS sink unavailable, continuing without it")
		} else {
			defer natsSink.Close()
			sinks = append(sinks, natsSink)
		}
	}

	metrics := telemetry.NewMetrics()

	mux := http.NewServeMux()
	mux.HandleFunc("/livefeed", broadcaster.HandleWebSocket)
	srv := api.NewServer(&api.Server{
		DB:       db,
		Vehicle:  vehicleReader,
		Config:   cfg,
		Geofence: geofence.None{},
		Params:   paramStore,
		Sink:     sinks,
		Metrics:  metrics,
		Logger:   logger,
	})
	mux.Handle("/", srv)

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", *httpPort), Handler: mux}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", *httpPort).Info("heimdall: HTTP API listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-sigCh:
		logger.Info("heimdall: shutdown signal received")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("heimdall: http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}

// defaultLandParams seeds the simulation-mode parameter fallback with a
// conservative fixed-wing glide-slope default, so -sim runs can still
// exercise the fixed-wing landing sequencer without live hardware.
func defaultLandParams() map[string]float64 {
	return map[string]float64{
		"FW_LND_ANG": 15.0,
	}
}
