// Package metrics exposes Prometheus metrics for the webhook service on a
// dedicated HTTP server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcomes used as the "result" label.
const (
	ResultSubmitted     = "submitted"
	ResultUnauthorized  = "unauthorized"
	ResultInvalid       = "invalid"
	ResultMisconfigured = "misconfigured"
	ResultFailed        = "failed"
)

// MetricsServer serves /metrics from its own registry.
type MetricsServer struct {
	srv      *http.Server
	registry *prometheus.Registry
	recorder *Recorder
}

// New creates a metrics server listening on addr. Metric names are prefixed
// with namespace.
func New(namespace, addr string) (*MetricsServer, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	recorder, err := NewRecorder(namespace, reg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		registry: reg,
		recorder: recorder,
	}, nil
}

// Recorder returns the recorder registered with this server.
func (m *MetricsServer) Recorder() *Recorder {
	return m.recorder
}

// Handler returns the HTTP handler serving /metrics.
func (m *MetricsServer) Handler() http.Handler {
	return m.srv.Handler
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}

// Recorder records webhook outcomes. A nil *Recorder is a no-op.
type Recorder struct {
	webhookRequests *prometheus.CounterVec
	submitDuration  prometheus.Histogram
}

// NewRecorder creates the webhook collectors and registers them with reg.
func NewRecorder(namespace string, reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		webhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Webhook requests by outcome",
		}, []string{"result"}),
		submitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attestation_submit_duration_seconds",
			Help:      "Time spent submitting an attestation transaction",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if err := reg.Register(r.webhookRequests); err != nil {
		return nil, err
	}
	if err := reg.Register(r.submitDuration); err != nil {
		return nil, err
	}
	return r, nil
}

// ObserveWebhook counts a webhook request with the given result.
func (r *Recorder) ObserveWebhook(result string) {
	if r == nil {
		return
	}
	r.webhookRequests.WithLabelValues(result).Inc()
}

// ObserveSubmit records how long a submission took.
func (r *Recorder) ObserveSubmit(d time.Duration) {
	if r == nil {
		return
	}
	r.submitDuration.Observe(d.Seconds())
}
