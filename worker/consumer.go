package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/AjayBarot7035/secret-santa/internal/natsutil"
	"github.com/AjayBarot7035/secret-santa/types"
)

// Consumer runs a durable JetStream pull consumer on the request subject.
//
// Every worker replica binds the same durable name, so JetStream spreads
// requests across replicas and each request is handled by one of them.
type Consumer struct {
	js      jetstream.JetStream
	config  Config
	logger  types.Logger
	handler MessageHandler

	mu       sync.Mutex
	consumer jetstream.Consumer
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewConsumer creates a Consumer. Start must be called to begin pulling.
//
// Parameters:
//   - js: JetStream context (must be non-nil)
//   - cfg: Worker configuration; zero fields take defaults
//   - handler: Message handler invoked for each request message
//
// Returns:
//   - *Consumer: Initialized consumer with defaults applied
//   - error: Configuration error
//
// Example:
//
//	cons, err := worker.NewConsumer(js, worker.Config{
//	    StreamName:     "SECRET_SANTA",
//	    RequestSubject: "santa.requests",
//	}, processor)
//	if err != nil {
//	    return err
//	}
//	if err := cons.Start(ctx); err != nil {
//	    return err
//	}
//	defer cons.Close(context.Background())
func NewConsumer(js jetstream.JetStream, cfg Config, handler MessageHandler) (*Consumer, error) {
	if js == nil {
		return nil, types.ErrNATSConnectionRequired
	}
	if handler == nil {
		return nil, errors.New("message handler is required")
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidConfig, err)
	}

	return &Consumer{
		js:      js,
		config:  cfg,
		logger:  cfg.Logger,
		handler: handler,
	}, nil
}

// Start creates or updates the durable consumer and launches the pull loop.
//
// The loop runs until ctx is cancelled or Close is called. The stream must
// exist; see EnsureStream.
//
// Returns:
//   - error: Already started, or consumer provisioning failed after retries
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return errors.New("consumer already started")
	}

	durable := sanitizeToken(c.config.ConsumerName)
	cfg := jetstream.ConsumerConfig{
		Name:          durable,
		Durable:       durable,
		FilterSubject: c.config.RequestSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWait,
		MaxDeliver:    c.config.MaxDeliver,
		MaxWaiting:    c.config.MaxWaiting,
		DeliverPolicy: jetstream.DeliverAllPolicy,
	}

	bo := newBackoff(&c.config)
	var (
		cons    jetstream.Consumer
		lastErr error
	)
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cons, lastErr = c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, cfg)
		if lastErr == nil {
			break
		}
		if attempt >= c.config.MaxRetries {
			return fmt.Errorf("failed to create consumer %s after %d attempts: %w", durable, c.config.MaxRetries+1, lastErr)
		}
		delay := bo.next()
		c.logger.Warn("consumer provisioning failed, retrying", "durable", durable, "delay", delay, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	pullCtx, cancel := context.WithCancel(ctx)
	c.consumer = cons
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(pullCtx, cons, c.done)

	c.logger.Info("worker consumer started", "stream", c.config.StreamName, "durable", durable, "subject", c.config.RequestSubject)

	return nil
}

// run is the pull loop. It recreates the message iterator after transient errors.
func (c *Consumer) run(ctx context.Context, cons jetstream.Consumer, done chan struct{}) {
	defer close(done)

	bo := newBackoff(&c.config)
	for {
		if ctx.Err() != nil {
			return
		}

		iter, err := cons.Messages(
			jetstream.PullMaxMessages(c.config.BatchSize),
			jetstream.PullExpiry(c.config.FetchTimeout),
			jetstream.PullHeartbeat(c.config.FetchTimeout/2),
		)
		if err != nil {
			c.logIteratorError("failed to create message iterator", err)
			if !c.sleep(ctx, bo.next()) {
				return
			}

			continue
		}

		if c.drain(ctx, iter, bo) {
			return
		}
	}
}

// drain handles messages until the iterator fails. It reports whether the loop should stop.
func (c *Consumer) drain(ctx context.Context, iter jetstream.MessagesContext, bo *backoff) bool {
	stop := context.AfterFunc(ctx, iter.Stop)
	defer stop()
	defer iter.Stop()

	for {
		msg, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, jetstream.ErrMsgIteratorClosed) {
				return true
			}
			c.logIteratorError("pull loop iterator error, retrying", err)

			return !c.sleep(ctx, bo.next())
		}
		bo.reset()

		if err := c.handler.Handle(ctx, msg); err != nil {
			c.logger.Warn("message handling failed, requesting redelivery", "subject", msg.Subject(), "error", err)
			if nakErr := msg.Nak(); nakErr != nil {
				c.logger.Error("failed to NAK message", "error", nakErr)
			}

			continue
		}
		if err := msg.Ack(); err != nil {
			c.logger.Error("failed to ACK message", "error", err)
		}
	}
}

func (c *Consumer) logIteratorError(msg string, err error) {
	if natsutil.IsConnectivityError(err) {
		c.logger.Warn(msg, "error", err)
		return
	}
	c.logger.Error(msg, "error", err)
}

// sleep waits for d and reports false if ctx ended first.
func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// Close stops the pull loop and waits for the in-flight message to finish.
//
// The durable consumer is NOT deleted from NATS; other replicas keep using it.
//
// Parameters:
//   - ctx: Context bounding the wait
//
// Returns:
//   - error: ctx error if the loop did not stop in time
func (c *Consumer) Close(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done, c.consumer = nil, nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}

	c.logger.Info("closing worker consumer")
	cancel()

	select {
	case <-done:
		c.logger.Info("worker consumer closed")
		return nil
	case <-ctx.Done():
		c.logger.Warn("close context cancelled before pull loop stopped")
		return ctx.Err()
	}
}

// Info returns the JetStream ConsumerInfo of the durable consumer.
//
// Returns:
//   - *jetstream.ConsumerInfo: Consumer metadata and delivery counters
//   - error: Non-nil if the consumer is not started or the Info call fails
func (c *Consumer) Info(ctx context.Context) (*jetstream.ConsumerInfo, error) {
	c.mu.Lock()
	cons := c.consumer
	c.mu.Unlock()
	if cons == nil {
		return nil, errors.New("consumer not started")
	}

	info, err := cons.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumer info: %w", err)
	}

	return info, nil
}
