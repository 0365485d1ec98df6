package testutil

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AjayBarot7035/secret-santa/wire"
)

// LoadConfig configures RunLoad.
type LoadConfig struct {
	// Requests is the total number of requests to submit
	Requests int

	// Concurrency is the number of concurrent submitters (default: 4)
	Concurrency int

	// RosterSize is the number of participants per request (default: 10)
	RosterSize int

	// WithHistory adds a rotation of the roster as previous assignments
	WithHistory bool

	// RequestTimeout bounds each submit-to-result round trip (default: 30s)
	RequestTimeout time.Duration

	// SampleInterval is how often resource usage is sampled (default: 100ms)
	SampleInterval time.Duration

	// Description is a human-readable description of the test
	Description string
}

// LoadMetrics captures the outcome of a load run.
type LoadMetrics struct {
	Config LoadConfig

	Succeeded int
	Failed    int
	Latencies []time.Duration
	Errors    []error

	PeakMemoryMB   float64
	PeakGoroutines int

	StartTime time.Time
	EndTime   time.Time

	mu sync.Mutex
}

// RunLoad submits cfg.Requests requests through the pipeline and waits for
// each result.
//
// Every successful response is checked to be a valid assignment; violations
// are recorded as errors.
//
// Parameters:
//   - ctx: Context for cancellation
//   - p: Running pipeline
//   - cfg: Load settings
//
// Returns:
//   - *LoadMetrics: Collected metrics
//
// Example:
//
//	m := testutil.RunLoad(ctx, p, testutil.LoadConfig{Requests: 200, Concurrency: 8})
//	t.Log(m.Report())
func RunLoad(ctx context.Context, p *Pipeline, cfg LoadConfig) *LoadMetrics {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.RosterSize <= 0 {
		cfg.RosterSize = 10
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 100 * time.Millisecond
	}

	m := &LoadMetrics{Config: cfg, StartTime: time.Now()}

	sampleCtx, stopSampling := context.WithCancel(ctx)
	var sampler sync.WaitGroup
	sampler.Add(1)
	go func() {
		defer sampler.Done()
		m.sampleUntil(sampleCtx, cfg.SampleInterval)
	}()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				m.runOne(ctx, p, cfg, i)
			}
		}()
	}

	for i := range cfg.Requests {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	stopSampling()
	sampler.Wait()
	m.EndTime = time.Now()

	return m
}

func (m *LoadMetrics) runOne(ctx context.Context, p *Pipeline, cfg LoadConfig, i int) {
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	roster := Roster(cfg.RosterSize)
	req := wire.Request{Employees: roster, RequestID: fmt.Sprintf("load-%06d", i)}
	if cfg.WithHistory {
		req.PreviousAssignments = Rotation(roster)
	}

	start := time.Now()
	id, err := p.Submit(ctx, req)
	if err != nil {
		m.recordError(fmt.Errorf("submit %d: %w", i, err))
		return
	}

	var status wire.StatusResponse
	err = WaitFor(ctx, cfg.RequestTimeout, 10*time.Millisecond, func() (bool, error) {
		s, done, err := p.Status(ctx, id)
		status = s

		return done, err
	})
	if err != nil {
		m.recordError(fmt.Errorf("await %s: %w", id, err))
		return
	}
	latency := time.Since(start)

	if err := checkResponse(req, status); err != nil {
		m.recordError(fmt.Errorf("request %s: %w", id, err))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Latencies = append(m.Latencies, latency)
	if status.Success {
		m.Succeeded++
	} else {
		m.Failed++
	}
}

// checkResponse validates a response without a testing.TB so it can run on
// submitter goroutines.
func checkResponse(req wire.Request, status wire.StatusResponse) error {
	if !status.Success {
		return nil
	}
	if len(status.Assignments) != len(req.Employees) {
		return fmt.Errorf("got %d assignments for %d participants", len(status.Assignments), len(req.Employees))
	}

	forbidden := make(map[string]struct{}, len(req.PreviousAssignments))
	for _, prev := range req.PreviousAssignments {
		forbidden[prev.GiverEmail+"\x00"+prev.ReceiverName] = struct{}{}
	}

	receivers := make(map[string]struct{}, len(status.Assignments))
	for _, a := range status.Assignments {
		if a.GiverEmail == a.ReceiverEmail {
			return fmt.Errorf("self-pairing for %s", a.GiverEmail)
		}
		if _, ok := forbidden[a.GiverEmail+"\x00"+a.ReceiverName]; ok {
			return fmt.Errorf("repeated pairing %s -> %s", a.GiverName, a.ReceiverName)
		}
		if _, dup := receivers[a.ReceiverEmail]; dup {
			return fmt.Errorf("%s receives twice", a.ReceiverEmail)
		}
		receivers[a.ReceiverEmail] = struct{}{}
	}

	return nil
}

func (m *LoadMetrics) recordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, err)
}

func (m *LoadMetrics) sampleUntil(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.sample()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *LoadMetrics) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	mem := float64(ms.Alloc) / 1024 / 1024
	goroutines := runtime.NumGoroutine()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.PeakMemoryMB = max(m.PeakMemoryMB, mem)
	m.PeakGoroutines = max(m.PeakGoroutines, goroutines)
}

// Duration returns the total run duration.
func (m *LoadMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}

	return m.EndTime.Sub(m.StartTime)
}

// LatencyPercentile returns the pth percentile round-trip latency.
//
// Parameters:
//   - p: Percentile (0.0-1.0), e.g., 0.95 for 95th percentile
//
// Returns:
//   - time.Duration: The latency at the percentile, 0 without samples
func (m *LoadMetrics) LatencyPercentile(p float64) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return percentile(m.Latencies, p)
}

func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}

// Report generates a formatted report of the run.
func (m *LoadMetrics) Report() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	b.WriteString("\n=== Load Test Report ===\n")
	fmt.Fprintf(&b, "Description: %s\n", m.Config.Description)
	fmt.Fprintf(&b, "Duration: %v\n", m.Duration())
	fmt.Fprintf(&b, "Requests: %d (concurrency %d, roster %d)\n", m.Config.Requests, m.Config.Concurrency, m.Config.RosterSize)
	fmt.Fprintf(&b, "Succeeded: %d  Failed: %d  Errors: %d\n", m.Succeeded, m.Failed, len(m.Errors))

	if len(m.Latencies) > 0 {
		fmt.Fprintf(&b, "Latency P50: %v  P95: %v  P99: %v\n",
			percentile(m.Latencies, 0.50), percentile(m.Latencies, 0.95), percentile(m.Latencies, 0.99))
	}
	fmt.Fprintf(&b, "Peak Memory: %.2f MB  Peak Goroutines: %d\n", m.PeakMemoryMB, m.PeakGoroutines)

	for i, err := range m.Errors {
		if i == 5 {
			fmt.Fprintf(&b, "  ... and %d more\n", len(m.Errors)-5)
			break
		}
		fmt.Fprintf(&b, "  %d: %v\n", i+1, err)
	}

	return b.String()
}
