package worker

import "time"

// Default configuration values for Consumer and Processor.
const (
	// DefaultStreamName is the default JetStream stream name.
	DefaultStreamName = "SECRET_SANTA"

	// DefaultRequestSubject is the default subject requests are published to.
	DefaultRequestSubject = "santa.requests"

	// DefaultResultSubjectPrefix is the default prefix of per-request result subjects.
	DefaultResultSubjectPrefix = "santa.results"

	// DefaultConsumerName is the default durable consumer shared by all workers.
	DefaultConsumerName = "secret-santa-worker"

	// DefaultBatchSize is the default number of messages to fetch per pull request.
	DefaultBatchSize = 1

	// DefaultMaxWaiting is the default maximum number of outstanding pull requests.
	DefaultMaxWaiting = 512

	// DefaultFetchTimeout is the default maximum duration to wait for messages.
	DefaultFetchTimeout = 5 * time.Second

	// DefaultAckWait is the default duration to wait for acknowledgment.
	DefaultAckWait = 30 * time.Second

	// DefaultMaxDeliver is the default maximum delivery attempts.
	DefaultMaxDeliver = 3

	// DefaultProcessTimeout bounds the handling of one message.
	DefaultProcessTimeout = 10 * time.Second

	// DefaultStreamMaxAge is how long requests and results stay in the stream.
	DefaultStreamMaxAge = 24 * time.Hour

	// DefaultMaxRetries is the default number of consumer provisioning retries.
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the base delay between retries.
	DefaultRetryBackoff = 100 * time.Millisecond

	// DefaultRetryBackoffCap caps the delay between retries.
	DefaultRetryBackoffCap = 5 * time.Second

	// DefaultRetryMultiplier grows the delay between consecutive retries.
	DefaultRetryMultiplier = 1.6
)

// Message processing results reported to WorkerMetrics.
const (
	ResultSucceeded    = "succeeded"
	ResultFailed       = "failed"
	ResultMalformed    = "malformed"
	ResultPublishError = "publish_error"
	ResultHistoryError = "history_error"
)
