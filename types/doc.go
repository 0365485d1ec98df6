// Package types provides core type definitions and interfaces for the secret santa library.
//
// This package contains shared types that are used across multiple packages in the
// module. By keeping these types in a separate package, we avoid import cycles
// between the root secretsanta package and its internal implementations.
//
// Key types:
//   - Participant: Group member identified by folded name and email
//   - ForbiddenPair / ForbiddenSet: Prior-period pairings that must not recur
//   - Assignment: A single giver → receiver pairing
//   - Result: Tagged outcome of one generation request
//   - AssignmentStrategy: One randomized attempt at a complete assignment
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
