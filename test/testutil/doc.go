// Package testutil provides shared fixtures for integration and stress tests.
//
// It wires the full asynchronous pipeline (HTTP API, JetStream stream,
// worker consumers and results bucket) on an embedded NATS server, and
// offers helpers to drive it:
//   - StartPipeline builds and tears down the pipeline
//   - Pipeline.Submit and Pipeline.AwaitStatus drive it over HTTP
//   - Roster builds participant lists of any size
//   - RequireValidResponse checks a response against the assignment rules
//   - RunLoad submits requests concurrently and reports latencies
//
// Note: For bare NATS server setup, use the secret-santa testing package.
package testutil
