package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsHandler exposes the default Prometheus registry, which
// telemetry.NewMetrics registers its collectors against.
func (s *Server) metricsHandler() http.Handler {
	return promhttp.Handler()
}
