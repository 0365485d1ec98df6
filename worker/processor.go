package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/AjayBarot7035/secret-santa/results"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// Runner generates assignments for a decoded request.
//
// *exchange.Service satisfies Runner.
type Runner interface {
	Run(ctx context.Context, req wire.Request) (types.Result, error)
}

// Publisher publishes to JetStream. jetstream.JetStream satisfies it.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Processor is the MessageHandler that turns request messages into responses.
//
// For each message it:
//  1. Decodes a wire.Request (a malformed payload yields an error response and is ACKed)
//  2. Runs generation under Config.ProcessTimeout
//  3. Stores the santa-named response in the results store
//  4. Publishes it to <ResultSubjectPrefix>.<request ID>
//
// Storage or publish failures NAK the message for redelivery.
type Processor struct {
	pub     Publisher
	runner  Runner
	store   results.Store
	config  Config
	logger  types.Logger
	metrics types.WorkerMetrics
	now     func() time.Time
}

var _ MessageHandler = (*Processor)(nil)

// NewProcessor creates a Processor.
//
// Parameters:
//   - pub: Result publisher (usually the JetStream context)
//   - runner: Generation service
//   - store: Response store polled by status checks
//   - cfg: Worker configuration; zero fields take defaults
//
// Returns:
//   - *Processor: Ready handler
//   - error: A required dependency is nil
func NewProcessor(pub Publisher, runner Runner, store results.Store, cfg Config) (*Processor, error) {
	if pub == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if store == nil {
		return nil, errors.New("results store is required")
	}

	cfg.applyDefaults()

	return &Processor{
		pub:     pub,
		runner:  runner,
		store:   store,
		config:  cfg,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     time.Now,
	}, nil
}

// Handle implements MessageHandler.
func (p *Processor) Handle(ctx context.Context, msg jetstream.Msg) error {
	start := p.now()
	outcome, err := p.handle(ctx, msg)
	p.metrics.RecordMessageProcessed(outcome, p.now().Sub(start).Seconds())

	return err
}

func (p *Processor) handle(ctx context.Context, msg jetstream.Msg) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.ProcessTimeout)
	defer cancel()

	req, err := wire.DecodeRequest(msg.Data())
	requestID := requestIDOf(req, msg)
	log := p.logger.With("request_id", requestID)
	if err != nil {
		log.Warn("malformed request message", "error", err)
		if err := p.deliver(ctx, requestID, wire.ErrorResponse(err)); err != nil {
			return ResultPublishError, err
		}

		return ResultMalformed, nil
	}

	result, err := p.runner.Run(ctx, req)
	if err != nil {
		if !lastDelivery(msg, p.config.MaxDeliver) {
			return ResultHistoryError, fmt.Errorf("request %s: %w", requestID, err)
		}
		// Out of redeliveries: tell the caller instead of dropping the request.
		log.Error("request failed on final delivery", "error", err)
		if err := p.deliver(ctx, requestID, wire.ErrorResponse(fmt.Errorf("Internal server error: %w", err))); err != nil { //nolint:staticcheck // message is part of the wire contract
			return ResultPublishError, err
		}

		return ResultHistoryError, nil
	}

	// An interrupted generation is not an answer; redeliver it.
	if !result.Success && ctx.Err() != nil && errors.Is(result.Err, ctx.Err()) {
		return ResultFailed, fmt.Errorf("request %s interrupted: %w", requestID, ctx.Err())
	}

	if err := p.deliver(ctx, requestID, wire.NewResponse(result, wire.GiverNamingSanta)); err != nil {
		return ResultPublishError, err
	}

	if !result.Success {
		log.Info("request processed without assignments", "error", result.ErrorMessage())
		return ResultFailed, nil
	}
	log.Info("request processed", "assignments", len(result.Assignments), "attempts", result.Attempts)

	return ResultSucceeded, nil
}

// deliver stamps, stores and publishes a response.
func (p *Processor) deliver(ctx context.Context, requestID string, resp wire.Response) error {
	resp = resp.Stamp(requestID, p.now())

	if err := p.store.Put(ctx, requestID, resp); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := p.pub.Publish(ctx, p.config.ResultSubject(requestID), data); err != nil {
		return fmt.Errorf("failed to publish response: %w", err)
	}

	return nil
}

// requestIDOf picks the request ID from the payload, then the message ID
// header, then the stream sequence.
func requestIDOf(req wire.Request, msg jetstream.Msg) string {
	if req.RequestID != "" {
		return req.RequestID
	}
	if h := msg.Headers(); h != nil {
		if id := h.Get(jetstream.MsgIDHeader); id != "" {
			return id
		}
	}
	if meta, err := msg.Metadata(); err == nil {
		return fmt.Sprintf("%s-%d", meta.Stream, meta.Sequence.Stream)
	}

	return "unknown"
}

// lastDelivery reports whether a NAK would exhaust MaxDeliver.
func lastDelivery(msg jetstream.Msg, maxDeliver int) bool {
	meta, err := msg.Metadata()
	if err != nil {
		return false
	}

	return maxDeliver > 0 && meta.NumDelivered >= uint64(maxDeliver) //nolint:gosec // maxDeliver is positive
}
