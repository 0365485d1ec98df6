package metrics

import "github.com/AjayBarot7035/secret-santa/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default when no collector is configured.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	gen := secretsanta.NewGenerator(secretsanta.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// GeneratorMetrics implementation

// RecordGeneration discards the generation outcome metric.
func (n *NopMetrics) RecordGeneration(_ /* outcome */ string, _ /* attempts */ int, _ /* duration */ float64) {
	// No-op
}

// RecordValidationFailure discards the validation failure metric.
func (n *NopMetrics) RecordValidationFailure(_ /* code */ string) {
	// No-op
}

// RecordParticipantCount discards the participant count metric.
func (n *NopMetrics) RecordParticipantCount(_ /* count */ int) {
	// No-op
}

// WorkerMetrics implementation

// RecordMessageProcessed discards the message processing metric.
func (n *NopMetrics) RecordMessageProcessed(_ /* result */ string, _ /* duration */ float64) {
	// No-op
}

// HTTPMetrics implementation

// RecordHTTPRequest discards the HTTP request metric.
func (n *NopMetrics) RecordHTTPRequest(_ /* route */ string, _ /* status */ int, _ /* duration */ float64) {
	// No-op
}
