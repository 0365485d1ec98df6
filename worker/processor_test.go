package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	secretsanta "github.com/AjayBarot7035/secret-santa"
	"github.com/AjayBarot7035/secret-santa/internal/exchange"
	"github.com/AjayBarot7035/secret-santa/results"
	santatest "github.com/AjayBarot7035/secret-santa/testing"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// fakeMsg implements the parts of jetstream.Msg the Processor reads.
type fakeMsg struct {
	jetstream.Msg
	data      []byte
	headers   nats.Header
	delivered uint64
}

func (m *fakeMsg) Data() []byte         { return m.data }
func (m *fakeMsg) Headers() nats.Header { return m.headers }
func (m *fakeMsg) Subject() string      { return DefaultRequestSubject }

func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) {
	return &jetstream.MsgMetadata{
		Stream:       DefaultStreamName,
		Sequence:     jetstream.SequencePair{Stream: 42, Consumer: 1},
		NumDelivered: m.delivered,
	}, nil
}

type published struct {
	subject string
	resp    wire.Response
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if p.err != nil {
		return nil, p.err
	}

	var resp wire.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{subject: subject, resp: resp})

	return &jetstream.PubAck{Stream: DefaultStreamName}, nil
}

type runnerFunc func(ctx context.Context, req wire.Request) (types.Result, error)

func (f runnerFunc) Run(ctx context.Context, req wire.Request) (types.Result, error) { return f(ctx, req) }

type recordingWorkerMetrics struct {
	mu      sync.Mutex
	results []string
}

func (r *recordingWorkerMetrics) RecordMessageProcessed(result string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func requestPayload(t *testing.T, req wire.Request) []byte {
	t.Helper()

	data, err := json.Marshal(req)
	require.NoError(t, err)

	return data
}

type processorFixture struct {
	proc    *Processor
	pub     *fakePublisher
	store   *results.Memory
	metrics *recordingWorkerMetrics
}

func newProcessorFixture(t *testing.T, runner Runner) processorFixture {
	t.Helper()

	if runner == nil {
		runner = exchange.New(secretsanta.NewGenerator(secretsanta.WithSeed(7)))
	}
	f := processorFixture{
		pub:     &fakePublisher{},
		store:   results.NewMemory(),
		metrics: &recordingWorkerMetrics{},
	}
	proc, err := NewProcessor(f.pub, runner, f.store, Config{
		Logger:  santatest.NewTestLogger(t),
		Metrics: f.metrics,
	})
	require.NoError(t, err)
	f.proc = proc

	return f
}

func TestNewProcessor_RequiredDependencies(t *testing.T) {
	runner := exchange.New(secretsanta.NewGenerator())

	_, err := NewProcessor(nil, runner, results.NewMemory(), Config{})
	require.ErrorIs(t, err, types.ErrNATSConnectionRequired)

	_, err = NewProcessor(&fakePublisher{}, nil, results.NewMemory(), Config{})
	require.ErrorContains(t, err, "runner is required")

	_, err = NewProcessor(&fakePublisher{}, runner, nil, Config{})
	require.ErrorContains(t, err, "results store is required")
}

func TestProcessor_Success(t *testing.T) {
	f := newProcessorFixture(t, nil)
	participants := santatest.FourParticipants()
	msg := &fakeMsg{data: requestPayload(t, wire.Request{Employees: participants, RequestID: "req-1"}), delivered: 1}

	require.NoError(t, f.proc.Handle(t.Context(), msg))

	require.Len(t, f.pub.msgs, 1)
	require.Equal(t, "santa.results.req-1", f.pub.msgs[0].subject)
	resp := f.pub.msgs[0].resp
	require.True(t, resp.Success)
	require.Nil(t, resp.Error)
	require.Equal(t, "req-1", resp.RequestID)
	require.NotEmpty(t, resp.Timestamp)

	assignments := make([]types.Assignment, 0, len(resp.Assignments))
	for _, rec := range resp.Assignments {
		require.Equal(t, wire.GiverNamingSanta, rec.Naming)
		assignments = append(assignments, rec.Assignment())
	}
	santatest.RequireValidAssignment(t, participants, nil, assignments)

	stored, ok, err := f.store.Get(t.Context(), "req-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, resp, stored)
	require.Equal(t, []string{ResultSucceeded}, f.metrics.results)
}

func TestProcessor_GenerationFailureIsAnswered(t *testing.T) {
	f := newProcessorFixture(t, nil)
	msg := &fakeMsg{data: requestPayload(t, wire.Request{
		Employees: []types.Participant{{Name: "Solo", Email: "solo@example.com"}},
		RequestID: "req-solo",
	}), delivered: 1}

	require.NoError(t, f.proc.Handle(t.Context(), msg))

	require.Len(t, f.pub.msgs, 1)
	resp := f.pub.msgs[0].resp
	require.False(t, resp.Success)
	require.Empty(t, resp.Assignments)
	require.Equal(t, types.ErrInsufficientParticipants.Error(), resp.ErrorMessage())
	require.Equal(t, []string{ResultFailed}, f.metrics.results)
}

func TestProcessor_Malformed(t *testing.T) {
	f := newProcessorFixture(t, nil)
	msg := &fakeMsg{
		data:      []byte("{not json"),
		headers:   nats.Header{jetstream.MsgIDHeader: []string{"bad-1"}},
		delivered: 1,
	}

	require.NoError(t, f.proc.Handle(t.Context(), msg), "malformed messages are ACKed")

	require.Len(t, f.pub.msgs, 1)
	require.Equal(t, "santa.results.bad-1", f.pub.msgs[0].subject)
	require.False(t, f.pub.msgs[0].resp.Success)
	require.Contains(t, f.pub.msgs[0].resp.ErrorMessage(), "invalid request")
	require.Equal(t, []string{ResultMalformed}, f.metrics.results)
}

func TestProcessor_RequestIDFallback(t *testing.T) {
	f := newProcessorFixture(t, nil)
	msg := &fakeMsg{data: requestPayload(t, wire.Request{Employees: santatest.FourParticipants()}), delivered: 1}

	require.NoError(t, f.proc.Handle(t.Context(), msg))

	_, ok, err := f.store.Get(t.Context(), "SECRET_SANTA-42")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestProcessor_PublishFailureRedelivers(t *testing.T) {
	f := newProcessorFixture(t, nil)
	f.pub.err = nats.ErrNoServers
	msg := &fakeMsg{data: requestPayload(t, wire.Request{Employees: santatest.FourParticipants(), RequestID: "req-2"}), delivered: 1}

	err := f.proc.Handle(t.Context(), msg)
	require.ErrorIs(t, err, nats.ErrNoServers)
	require.Equal(t, []string{ResultPublishError}, f.metrics.results)
}

func TestProcessor_RunnerError(t *testing.T) {
	boom := errors.New("history unavailable")
	runner := runnerFunc(func(context.Context, wire.Request) (types.Result, error) {
		return types.Result{}, boom
	})

	t.Run("redelivers before the last attempt", func(t *testing.T) {
		f := newProcessorFixture(t, runner)
		msg := &fakeMsg{data: requestPayload(t, wire.Request{RequestID: "req-3"}), delivered: 1}

		require.ErrorIs(t, f.proc.Handle(t.Context(), msg), boom)
		require.Empty(t, f.pub.msgs)
		require.Zero(t, f.store.Len())
	})

	t.Run("answers on the last attempt", func(t *testing.T) {
		f := newProcessorFixture(t, runner)
		msg := &fakeMsg{data: requestPayload(t, wire.Request{RequestID: "req-3"}), delivered: DefaultMaxDeliver}

		require.NoError(t, f.proc.Handle(t.Context(), msg))
		require.Len(t, f.pub.msgs, 1)
		require.Equal(t, "Internal server error: history unavailable", f.pub.msgs[0].resp.ErrorMessage())
		require.Equal(t, []string{ResultHistoryError}, f.metrics.results)
	})
}

func TestProcessor_InterruptedGenerationRedelivers(t *testing.T) {
	f := newProcessorFixture(t, nil)
	msg := &fakeMsg{data: requestPayload(t, wire.Request{Employees: santatest.FourParticipants(), RequestID: "req-4"}), delivered: 1}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := f.proc.Handle(ctx, msg)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, f.pub.msgs)
}
