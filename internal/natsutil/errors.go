// Package natsutil classifies NATS client errors.
package natsutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/AjayBarot7035/secret-santa/types"
)

// connectivityErrors mean the broker could not be reached, not that a
// request was bad.
var connectivityErrors = []error{
	types.ErrConnectivity,
	nats.ErrTimeout,
	nats.ErrNoServers,
	nats.ErrDisconnected,
	nats.ErrConnectionClosed,
	nats.ErrConnectionDraining,
	jetstream.ErrNoStreamResponse,
	jetstream.ErrNoHeartbeat,
}

// Dial and socket failures surface from net as plain strings.
var connectivityMessages = []string{"connection refused", "i/o timeout"}

// IsConnectivityError reports whether err means NATS is unreachable.
//
// The worker backs off on these instead of treating them as bad messages,
// and the submit route answers 503.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range connectivityErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	msg := err.Error()
	for _, m := range connectivityMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}

	return false
}

// WrapConnectivity tags a connectivity error with types.ErrConnectivity so
// callers outside this package can test for it with errors.Is. Other errors
// and already tagged ones are returned unchanged.
func WrapConnectivity(err error) error {
	if !IsConnectivityError(err) || errors.Is(err, types.ErrConnectivity) {
		return err
	}

	return fmt.Errorf("%w: %w", types.ErrConnectivity, err)
}
