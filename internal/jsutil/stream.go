package jsutil

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// EnsureStreamWithRetry creates the stream or updates it to match config.
//
// CreateOrUpdateStream is idempotent, so concurrent callers with the same
// config converge on one stream.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: Stream configuration
//   - maxRetries: Maximum number of attempts (DefaultMaxRetries if <= 0)
//
// Returns:
//   - jetstream.Stream: The stream handle
//   - error: Last error after all attempts
func EnsureStreamWithRetry(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.StreamConfig,
	maxRetries int,
) (jetstream.Stream, error) {
	return retry(ctx, maxRetries, "stream "+config.Name+" provisioning", func() (jetstream.Stream, error) {
		return js.CreateOrUpdateStream(ctx, config)
	})
}
