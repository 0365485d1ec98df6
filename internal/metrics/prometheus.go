package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AjayBarot7035/secret-santa/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing a
// PrometheusCollector that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Generator metrics
	genTotal        *prometheus.CounterVec
	genAttempts     prometheus.Histogram
	genDuration     *prometheus.HistogramVec
	genValidation   *prometheus.CounterVec
	genParticipants prometheus.Histogram

	// Worker metrics
	workerMessages *prometheus.CounterVec
	workerDuration prometheus.Histogram

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "secret_santa" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "secret_santa"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.genTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "generations_total",
			Help:      "Total Generate calls by outcome (succeeded,rejected,exhausted,canceled).",
		}, []string{"outcome"})

		p.genAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "attempts",
			Help:      "Search attempts spent per Generate call.",
			Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100},
		})

		p.genDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "duration_seconds",
			Help:      "Generate call latency in seconds by outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{"outcome"})

		p.genValidation = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "validation_failures_total",
			Help:      "Rejected participant lists by validation code.",
		}, []string{"code"})

		p.genParticipants = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "generator",
			Name:      "participants",
			Help:      "Group size of accepted requests.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10), // 2 .. 1024
		})

		p.workerMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "messages_total",
			Help:      "Consumed request messages by result (succeeded,failed,malformed,publish_error).",
		}, []string{"result"})

		p.workerDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "worker",
			Name:      "message_duration_seconds",
			Help:      "Time spent processing one request message in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		})

		p.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests by route and status code.",
		}, []string{"route", "status"})

		p.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"})

		p.reg.MustRegister(p.genTotal)
		p.reg.MustRegister(p.genAttempts)
		p.reg.MustRegister(p.genDuration)
		p.reg.MustRegister(p.genValidation)
		p.reg.MustRegister(p.genParticipants)
		p.reg.MustRegister(p.workerMessages)
		p.reg.MustRegister(p.workerDuration)
		p.reg.MustRegister(p.httpRequests)
		p.reg.MustRegister(p.httpDuration)
	})
}

// GeneratorMetrics implementation

// RecordGeneration counts a Generate call and observes its attempts and latency.
func (p *PrometheusCollector) RecordGeneration(outcome string, attempts int, duration float64) {
	p.ensureRegistered()
	p.genTotal.WithLabelValues(outcome).Inc()
	p.genAttempts.Observe(float64(attempts))
	p.genDuration.WithLabelValues(outcome).Observe(duration)
}

// RecordValidationFailure counts a rejected participant list.
func (p *PrometheusCollector) RecordValidationFailure(code string) {
	p.ensureRegistered()
	p.genValidation.WithLabelValues(code).Inc()
}

// RecordParticipantCount observes the size of an accepted group.
func (p *PrometheusCollector) RecordParticipantCount(count int) {
	p.ensureRegistered()
	p.genParticipants.Observe(float64(count))
}

// WorkerMetrics implementation

// RecordMessageProcessed counts a consumed message and observes its processing time.
func (p *PrometheusCollector) RecordMessageProcessed(result string, duration float64) {
	p.ensureRegistered()
	p.workerMessages.WithLabelValues(result).Inc()
	p.workerDuration.Observe(duration)
}

// HTTPMetrics implementation

// RecordHTTPRequest counts a served request and observes its latency.
func (p *PrometheusCollector) RecordHTTPRequest(route string, status int, duration float64) {
	p.ensureRegistered()
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(route).Observe(duration)
}
