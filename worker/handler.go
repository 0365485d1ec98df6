package worker

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// MessageHandler processes JetStream messages yielded by the Consumer pull loop.
//
// Behavior summary:
//   - The Consumer calls Handle once per message.
//   - When Handle returns nil, the Consumer ACKs the message.
//     When Handle returns a non-nil error, the Consumer NAKs it for redelivery
//     until the consumer's MaxDeliver is reached.
//
// The pull loop is single-threaded: the next message is not handled until the
// current Handle returns. Handlers must be idempotent; delivery is at-least-once.
//
// Parameters:
//   - ctx: Pull loop context; cancelled when the Consumer closes
//   - msg: The JetStream message to process
//
// Returns:
//   - error: nil to ACK; non-nil to NAK
type MessageHandler interface {
	Handle(ctx context.Context, msg jetstream.Msg) error
}

// MessageHandlerFunc is a function adapter for MessageHandler.
type MessageHandlerFunc func(ctx context.Context, msg jetstream.Msg) error

// Handle implements MessageHandler interface.
func (f MessageHandlerFunc) Handle(ctx context.Context, msg jetstream.Msg) error { return f(ctx, msg) }
