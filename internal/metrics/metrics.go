// Package metrics exposes Prometheus instrumentation for the journal service.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// HTTPRequestDuration records request latency by method, route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chronicle_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// EntryOperations counts entry lifecycle operations by type and outcome.
	EntryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_entry_operations_total",
		Help: "Total entry operations by type and outcome",
	}, []string{"operation", "outcome"})

	// CacheRequests counts entry-list cache lookups by result.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_cache_requests_total",
		Help: "Total entry-list cache lookups by result",
	}, []string{"result"})

	// StatsComputeDuration records how long a statistics computation takes.
	StatsComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chronicle_stats_compute_duration_seconds",
		Help:    "Statistics computation latency in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	})
)

// RecordEntryOperation increments the entry operation counter.
func RecordEntryOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	EntryOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordCacheLookup increments the cache lookup counter. Failed or corrupt
// reads count as misses since they fall through to the repository.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(result).Inc()
}

// ObserveRequest records HTTP request latency.
func ObserveRequest(method, route string, status int, start time.Time) {
	HTTPRequestDuration.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}

// Server serves the Prometheus scrape endpoint on its own port.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a metrics server listening on the given port.
func NewServer(port int, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		logger: logger.With().Str("server", "metrics").Logger(),
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.srv.Addr).Msg("metrics server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
