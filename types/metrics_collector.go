package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called concurrently from request goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	GeneratorMetrics
	WorkerMetrics
	HTTPMetrics
}

// GeneratorMetrics defines metrics for assignment generation.
type GeneratorMetrics interface {
	// RecordGeneration records the outcome of one Generate call.
	//
	// Parameters:
	//   - outcome: "succeeded", "rejected", "exhausted" or "canceled"
	//   - attempts: Number of search attempts made
	//   - duration: Time taken in seconds
	RecordGeneration(outcome string, attempts int, duration float64)

	// RecordValidationFailure records a rejected participant list.
	//
	// Parameters:
	//   - code: Validation error code (e.g., "duplicate_participant")
	RecordValidationFailure(code string)

	// RecordParticipantCount records the group size of an accepted request.
	RecordParticipantCount(count int)
}

// WorkerMetrics defines metrics for the message queue worker.
type WorkerMetrics interface {
	// RecordMessageProcessed records a consumed request message.
	//
	// Parameters:
	//   - result: "succeeded", "failed", "malformed" or "publish_error"
	//   - duration: Processing time in seconds
	RecordMessageProcessed(result string, duration float64)
}

// HTTPMetrics defines metrics for the HTTP API.
type HTTPMetrics interface {
	// RecordHTTPRequest records a served HTTP request.
	//
	// Parameters:
	//   - route: Route template (e.g., "/api/v1/assignments/generate")
	//   - status: HTTP status code
	//   - duration: Handling time in seconds
	RecordHTTPRequest(route string, status int, duration float64)
}
