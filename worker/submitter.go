package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/AjayBarot7035/secret-santa/internal/jsutil"
	"github.com/AjayBarot7035/secret-santa/internal/natsutil"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// Submitter publishes assignment requests for asynchronous processing.
type Submitter struct {
	pub     Publisher
	subject string
}

// NewSubmitter creates a Submitter publishing to cfg.RequestSubject.
func NewSubmitter(pub Publisher, cfg Config) (*Submitter, error) {
	if pub == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}

	return &Submitter{pub: pub, subject: cfg.RequestSubject}, nil
}

// Submit publishes req and returns its request ID.
//
// A random UUID is assigned when req carries no request ID. The ID is also
// sent as the JetStream message ID, so resubmitting the same request within
// the stream's duplicate window is a no-op.
//
// Returns:
//   - string: Request ID to poll for the response
//   - error: Wraps types.ErrConnectivity when NATS is unreachable
func (s *Submitter) Submit(ctx context.Context, req wire.Request) (string, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	if _, err := s.pub.Publish(ctx, s.subject, data, jetstream.WithMsgID(req.RequestID)); err != nil {
		return "", fmt.Errorf("failed to submit request %s: %w", req.RequestID, natsutil.WrapConnectivity(err))
	}

	return req.RequestID, nil
}

// EnsureStream creates or updates the stream holding requests and results.
func EnsureStream(ctx context.Context, js jetstream.JetStream, cfg Config) (jetstream.Stream, error) {
	if js == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}

	return jsutil.EnsureStreamWithRetry(ctx, js, cfg.StreamConfig(), cfg.MaxRetries)
}
