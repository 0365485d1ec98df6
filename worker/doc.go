// Package worker processes assignment requests delivered over NATS JetStream.
//
// A Submitter publishes requests to the request subject. A Consumer drives a
// durable pull consumer on that subject and hands each message to a
// MessageHandler; Processor is the handler that generates assignments,
// stores the response and publishes it to <result prefix>.<request ID>.
//
// Delivery is at-least-once. Processing a redelivered request regenerates
// and overwrites its stored response.
package worker
