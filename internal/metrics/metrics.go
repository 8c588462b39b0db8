// Package metrics exposes Prometheus collectors for analytics API traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jalikoi/analytics-tui/internal/logger"
)

const (
	// OutcomeSuccess labels 2xx responses.
	OutcomeSuccess = "success"
	// OutcomeError labels non-2xx responses.
	OutcomeError = "error"
	// OutcomeTransport labels requests that never got a response.
	OutcomeTransport = "transport_error"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jalikoi_tui",
			Name:      "api_requests_total",
			Help:      "Total number of analytics API requests, partitioned by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jalikoi_tui",
			Name:      "api_request_seconds",
			Help:      "Analytics API request latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"endpoint"},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		apiRequestsTotal,
		apiRequestSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Outcome maps a status code and transport error to an outcome label.
func Outcome(status int, err error) string {
	switch {
	case status == 0 && err != nil:
		return OutcomeTransport
	case status >= 200 && status < 300 && err == nil:
		return OutcomeSuccess
	default:
		return OutcomeError
	}
}

// ObserveRequest records one request's latency and outcome.
func ObserveRequest(endpoint, outcome string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	apiRequestSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Server serves /metrics for the registered collectors.
type Server struct {
	srv *http.Server
}

// NewServer builds a metrics server on addr backed by gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &Server{srv: &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}}
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		logger.Info("metrics server listening", "address", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server exited", "error", err)
		}
	}()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
