// Package testing provides test utilities for the secret-santa module.
//
// It follows Go's convention of shipping test helpers in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: In-process NATS server with JetStream
//   - CreateJetStreamKV: In-memory KV bucket for result store tests
//   - RequireValidAssignment: Bijection, no self-pairing and history checks
//   - FixedRand, ReverseRand: Deterministic randomness sources
//
// Example usage:
//
//	import (
//	    "testing"
//	    santatest "github.com/AjayBarot7035/secret-santa/testing"
//	)
//
//	func TestGenerate(t *testing.T) {
//	    participants := santatest.FourParticipants()
//	    res := secretsanta.Generate(participants, nil)
//	    santatest.RequireValidAssignment(t, participants, nil, res.Assignments)
//	}
package testing
