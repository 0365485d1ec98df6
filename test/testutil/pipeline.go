package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	secretsanta "github.com/AjayBarot7035/secret-santa"
	"github.com/AjayBarot7035/secret-santa/httpapi"
	"github.com/AjayBarot7035/secret-santa/internal/exchange"
	"github.com/AjayBarot7035/secret-santa/results"
	santatest "github.com/AjayBarot7035/secret-santa/testing"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
	"github.com/AjayBarot7035/secret-santa/worker"
)

// PipelineConfig configures StartPipeline.
type PipelineConfig struct {
	// Workers is the number of consumers sharing the durable (default: 1)
	Workers int

	// History is applied to every worker's exchange service (optional)
	History exchange.History

	// Seed makes generation deterministic when non-zero
	Seed uint64
}

// Pipeline is a running asynchronous deployment on embedded NATS.
type Pipeline struct {
	NC        *nats.Conn
	JS        jetstream.JetStream
	Config    worker.Config
	Store     *results.KV
	Consumers []*worker.Consumer
	Server    *httptest.Server

	t *testing.T
}

// StartPipeline provisions the stream and results bucket, starts the worker
// consumers and serves the HTTP API. Everything is torn down via t.Cleanup.
//
// Parameters:
//   - t: Testing context
//   - cfg: Pipeline settings
//
// Returns:
//   - *Pipeline: Running pipeline
//
// Example:
//
//	p := testutil.StartPipeline(t, testutil.PipelineConfig{Workers: 2})
//	id := p.Submit(ctx, wire.Request{Employees: testutil.Roster(10)})
//	status := p.AwaitStatus(ctx, id, 10*time.Second)
func StartPipeline(t *testing.T, cfg PipelineConfig) *Pipeline {
	t.Helper()

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	_, nc := santatest.StartEmbeddedNATS(t)
	js := santatest.JetStream(t, nc)
	ctx := t.Context()

	natsCfg := secretsanta.TestConfig().NATS
	wcfg := worker.ConfigFromNATS(natsCfg)
	wcfg.Logger = santatest.NewTestLogger(t)

	_, err := worker.EnsureStream(ctx, js, wcfg)
	require.NoError(t, err)
	store, err := results.NewKV(ctx, js, natsCfg.ResultsBucket, natsCfg.ResultsTTL)
	require.NoError(t, err)

	p := &Pipeline{NC: nc, JS: js, Config: wcfg, Store: store, t: t}

	for i := range cfg.Workers {
		genOpts := []secretsanta.Option{}
		if cfg.Seed != 0 {
			genOpts = append(genOpts, secretsanta.WithSeed(cfg.Seed+uint64(i)))
		}
		svcOpts := []exchange.Option{exchange.WithLogger(wcfg.Logger)}
		if cfg.History != nil {
			svcOpts = append(svcOpts, exchange.WithHistory(cfg.History))
		}
		svc := exchange.New(secretsanta.NewGenerator(genOpts...), svcOpts...)

		proc, err := worker.NewProcessor(js, svc, store, wcfg)
		require.NoError(t, err)
		cons, err := worker.NewConsumer(js, wcfg, proc)
		require.NoError(t, err)
		require.NoError(t, cons.Start(ctx))
		p.Consumers = append(p.Consumers, cons)
	}

	sub, err := worker.NewSubmitter(js, wcfg)
	require.NoError(t, err)

	// The gateway never generates for queued requests, so its runner only
	// serves the synchronous route.
	srv, err := httpapi.New(exchange.New(secretsanta.NewGenerator()),
		httpapi.WithSubmitter(sub),
		httpapi.WithResults(store),
		httpapi.WithLogger(wcfg.Logger),
	)
	require.NoError(t, err)
	p.Server = httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		p.Server.Close()
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, c := range p.Consumers {
			_ = c.Close(closeCtx)
		}
	})

	return p
}

// Submit posts req to the submit route and returns the request ID.
func (p *Pipeline) Submit(ctx context.Context, req wire.Request) (string, error) {
	status, body, err := p.post(ctx, httpapi.RouteSubmit, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusAccepted {
		return "", fmt.Errorf("submit returned %d: %s", status, body)
	}

	var ack wire.SubmitAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return "", fmt.Errorf("decode ack: %w", err)
	}

	return ack.RequestID, nil
}

// Status fetches the status of id. The bool reports whether the request
// finished; a 202 yields false.
func (p *Pipeline) Status(ctx context.Context, id string) (wire.StatusResponse, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Server.URL+"/api/v1/secret_santa/check_status/"+id, nil)
	if err != nil {
		return wire.StatusResponse{}, false, err
	}
	resp, err := p.Server.Client().Do(httpReq)
	if err != nil {
		return wire.StatusResponse{}, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wire.StatusResponse{}, false, err
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return wire.StatusResponse{}, false, nil
	case http.StatusOK:
		var status wire.StatusResponse
		if err := json.Unmarshal(body, &status); err != nil {
			return wire.StatusResponse{}, false, fmt.Errorf("decode status: %w", err)
		}

		return status, true, nil
	default:
		return wire.StatusResponse{}, false, fmt.Errorf("check_status returned %d: %s", resp.StatusCode, body)
	}
}

// AwaitStatus polls the status route until id finishes, failing the test on
// timeout.
func (p *Pipeline) AwaitStatus(ctx context.Context, id string, timeout time.Duration) wire.StatusResponse {
	p.t.Helper()

	var status wire.StatusResponse
	err := WaitFor(ctx, timeout, 20*time.Millisecond, func() (bool, error) {
		s, done, err := p.Status(ctx, id)
		if err != nil {
			return false, err
		}
		status = s

		return done, nil
	})
	require.NoError(p.t, err, "request %s did not finish", id)

	return status
}

// Generate posts req to the synchronous route and returns status and body.
func (p *Pipeline) Generate(ctx context.Context, req wire.Request) (int, []byte, error) {
	return p.post(ctx, httpapi.RouteGenerate, req)
}

func (p *Pipeline) post(ctx context.Context, route string, req wire.Request) (int, []byte, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return 0, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Server.URL+route, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.Server.Client().Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	return resp.StatusCode, body, err
}

// Roster returns n distinct participants.
func Roster(n int) []types.Participant {
	participants := make([]types.Participant, n)
	for i := range participants {
		participants[i] = types.Participant{
			Name:  fmt.Sprintf("Employee %04d", i),
			Email: fmt.Sprintf("employee%04d@example.com", i),
		}
	}

	return participants
}
