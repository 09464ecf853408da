// Package api exposes the feasibility checker over HTTP: a single
// bearer-authenticated trigger endpoint that runs a check against mission
// items already resident in storage and returns the result plus the
// collected event stream as JSON. It is grounded on the Asgard auth
// service's own JWT middleware (internal/nysus/api/server.go), adapted
// from role/tier access levels to a flat authenticated/not gate, since
// Heimdall has no notion of civilian/military clearance tiers of its own.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/feasibility"
	"github.com/PossumXI/Asgard/Heimdall/internal/geofence"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
	"github.com/PossumXI/Asgard/Heimdall/internal/telemetry"
)

// VehicleStateSource supplies the vehicle snapshot a check runs against.
// mavlinkio.VehicleStateReader satisfies this.
type VehicleStateSource interface {
	Snapshot() mission.VehicleState
}

// Server wires the HTTP trigger API to its collaborators.
type Server struct {
	DB       *sql.DB
	Vehicle  VehicleStateSource
	Config   config.Config
	Geofence geofence.Geofence
	Params   config.ParamStore
	Sink     events.Sink
	Metrics  *telemetry.Metrics
	Logger   *logrus.Logger

	mux *http.ServeMux
}

// NewServer builds a Server with its routes registered.
func NewServer(s *Server) *Server {
	if s.Logger == nil {
		s.Logger = logrus.New()
	}
	if s.Geofence == nil {
		s.Geofence = geofence.None{}
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/missions/", s.requireAuth(s.handleCheck))
	s.mux.Handle("/metrics", s.metricsHandler())
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// requireAuth validates a bearer token before delegating to next. On
// failure it writes 401 and never calls next, the same fail-closed
// contract server.go's own authMiddleware enforces.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		if _, _, err := parseClaims(token, jwtSecret()); err != nil {
			s.Logger.WithError(err).Warn("heimdall: rejected request with invalid token")
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// checkResponse is the JSON body returned by POST /missions/{storageID}/check.
type checkResponse struct {
	CheckID    string          `json:"check_id"`
	Feasible   bool            `json:"feasible"`
	Warning    bool            `json:"warning"`
	HasTakeoff bool            `json:"has_takeoff"`
	HasLanding bool            `json:"has_landing"`
	ElapsedMS  int64           `json:"elapsed_ms"`
	LegStats   *telemetry.LegStats `json:"leg_stats,omitempty"`
	Events     []events.Event  `json:"events"`
}

// handleCheck runs a feasibility check against the mission identified by
// the URL's {storageID} path segment: POST /missions/{storageID}/check.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	storageID, ok := parseCheckPath(r.URL.Path)
	if !ok {
		http.Error(w, "expected /missions/{storageID}/check", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	reader, err := storage.NewPostgresReader(ctx, s.DB, storageID)
	if err != nil {
		s.Logger.WithError(err).WithField("storage_id", storageID).Error("heimdall: failed to open mission storage")
		http.Error(w, "mission not found", http.StatusNotFound)
		return
	}

	memSink := &events.MemorySink{}
	sinks := events.Multi{memSink}
	if s.Sink != nil {
		sinks = append(sinks, s.Sink)
	}
	if s.Metrics != nil {
		sinks = append(sinks, telemetry.EventCounterSink{Metrics: s.Metrics})
	}

	checker := feasibility.Checker{
		Items:    reader,
		Vehicle:  s.Vehicle.Snapshot(),
		Config:   s.Config,
		Geofence: s.Geofence,
		Params:   s.Params,
		Sink:     sinks,
		Metrics:  s.Metrics,
		Logger:   s.Logger,
	}

	result := checker.Check(ctx)

	resp := checkResponse{
		CheckID:    result.CheckID,
		Feasible:   result.Feasible,
		Warning:    result.Warning,
		HasTakeoff: result.HasTakeoff,
		HasLanding: result.HasLanding,
		ElapsedMS:  result.Elapsed.Milliseconds(),
		LegStats:   result.LegStats,
		Events:     memSink.Events,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// parseCheckPath extracts storageID from "/missions/{storageID}/check".
func parseCheckPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "missions" || parts[2] != "check" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
