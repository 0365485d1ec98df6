package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_Defaults(t *testing.T) {
	p := NewPrometheus(nil, "")

	require.Equal(t, prometheus.DefaultRegisterer, p.reg)
	require.Equal(t, "secret_santa", p.namespace)
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}

func TestPrometheusCollector_Generator(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordGeneration("succeeded", 1, 0.0001)
	p.RecordGeneration("succeeded", 3, 0.0002)
	p.RecordGeneration("exhausted", 100, 0.01)
	p.RecordValidationFailure("duplicate_participant")
	p.RecordParticipantCount(4)

	require.InDelta(t, 2, testutil.ToFloat64(p.genTotal.WithLabelValues("succeeded")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.genTotal.WithLabelValues("exhausted")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.genValidation.WithLabelValues("duplicate_participant")), 0)
	require.Equal(t, 1, testutil.CollectAndCount(p.genParticipants))
}

func TestPrometheusCollector_Boundaries(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordMessageProcessed("succeeded", 0.01)
	p.RecordMessageProcessed("malformed", 0.001)
	p.RecordHTTPRequest("/health", 200, 0.001)
	p.RecordHTTPRequest("/health", 200, 0.002)
	p.RecordHTTPRequest("/api/v1/assignments/generate", 422, 0.003)

	require.InDelta(t, 1, testutil.ToFloat64(p.workerMessages.WithLabelValues("malformed")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.httpRequests.WithLabelValues("/health", "200")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.httpRequests.WithLabelValues("/api/v1/assignments/generate", "422")), 0)
}
