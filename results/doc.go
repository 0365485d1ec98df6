// Package results stores responses of asynchronous assignment requests so
// callers can poll for them by request ID.
//
// Two implementations are provided:
//   - Memory: process-local, used in dev mode and tests
//   - KV: NATS JetStream KeyValue bucket with a TTL, shared by every replica
package results
