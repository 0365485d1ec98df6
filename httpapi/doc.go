// Package httpapi serves the secret santa HTTP API with gorilla/mux.
//
// Routes:
//
//	POST /api/v1/assignments/generate                   synchronous generation (employee naming)
//	POST /api/v1/secret_santa/generate_assignments      asynchronous submit, or synchronous in dev mode (santa naming)
//	GET  /api/v1/secret_santa/check_status/{request_id} poll an asynchronous request
//	GET  /health, /api/v1/secret_santa/health           health check
//	GET  /metrics                                       Prometheus metrics, when a handler is configured
package httpapi
