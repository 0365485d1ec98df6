package secretsanta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AjayBarot7035/secret-santa/internal/logger"
	"github.com/AjayBarot7035/secret-santa/internal/metrics"
	"github.com/AjayBarot7035/secret-santa/internal/randutil"
	"github.com/AjayBarot7035/secret-santa/roster"
	"github.com/AjayBarot7035/secret-santa/strategy"
	"github.com/AjayBarot7035/secret-santa/types"
)

// MaxAttempts is the number of randomized attempts Generate makes before
// reporting ErrInfeasible.
const MaxAttempts = 100

// Generation outcomes reported to GeneratorMetrics.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeExhausted = "exhausted"
	OutcomeCanceled  = "canceled"
)

// DuplicatePolicy controls how participants sharing a name or email are handled.
type DuplicatePolicy int

const (
	// DuplicatePolicyReject fails validation when any name or email repeats.
	DuplicatePolicyReject DuplicatePolicy = iota

	// DuplicatePolicyCollapse keeps the first occurrence of each identity and
	// validates the collapsed list.
	DuplicatePolicyCollapse
)

// String returns the configuration name of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicatePolicyReject:
		return "reject"
	case DuplicatePolicyCollapse:
		return "collapse"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy converts a configuration name to a DuplicatePolicy.
//
// Parameters:
//   - s: "reject" or "collapse", case-insensitive; empty selects reject
//
// Returns:
//   - DuplicatePolicy: The parsed policy
//   - error: Unknown policy name
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return DuplicatePolicyReject, nil
	case "collapse":
		return DuplicatePolicyCollapse, nil
	default:
		return DuplicatePolicyReject, fmt.Errorf("%w: unknown duplicate policy %q", ErrInvalidConfig, s)
	}
}

// Generator produces secret santa assignments.
//
// A Generator is immutable after construction and safe for concurrent use,
// provided its RandSource is. The default source is.
//
// Processing of one request:
//
//	Validating ──fail──► Rejected
//	    │
//	Normalizing
//	    │
//	Searching (attempt 1..MaxAttempts) ──ok──► Succeeded
//	    │
//	Exhausted
type Generator struct {
	strategy AssignmentStrategy
	rng      RandSource
	policy   DuplicatePolicy
	metrics  MetricsCollector
	logger   Logger
}

// NewGenerator creates a Generator.
//
// Defaults: strategy.Derangement, the global math/rand/v2 source,
// DuplicatePolicyReject, no-op metrics and logging.
//
// Parameters:
//   - opts: Optional configuration
//
// Returns:
//   - *Generator: Ready-to-use generator
//
// Example:
//
//	gen := secretsanta.NewGenerator(secretsanta.WithSeed(42))
//	res := gen.Generate(ctx, participants, previous)
func NewGenerator(opts ...Option) *Generator {
	o := generatorOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Generator{
		strategy: o.strategy,
		rng:      o.rng,
		policy:   o.policy,
		metrics:  o.metrics,
		logger:   o.logger,
	}
	if g.strategy == nil {
		g.strategy = strategy.NewDerangement()
	}
	if g.rng == nil {
		g.rng = randutil.Global()
	}
	if g.metrics == nil {
		g.metrics = metrics.NewNop()
	}
	if g.logger == nil {
		g.logger = logger.NewNop()
	}

	return g
}

// NewGeneratorFromConfig creates a Generator from the generator config section.
//
// Options are applied after the config, so they take precedence.
//
// Parameters:
//   - cfg: Generator settings (strategy, duplicate policy, seed)
//   - opts: Additional options such as WithLogger and WithMetrics
//
// Returns:
//   - *Generator: Configured generator
//   - error: ErrInvalidConfig for an unknown strategy or policy
func NewGeneratorFromConfig(cfg GeneratorConfig, opts ...Option) (*Generator, error) {
	strat, err := strategy.ByName(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	policy, err := ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithStrategy(strat),
		WithDuplicatePolicy(policy),
		WithRand(randutil.NewFromString(cfg.Seed)),
	}

	return NewGenerator(append(base, opts...)...), nil
}

// Generate assigns every participant exactly one other participant.
//
// Validation runs first and gates the search. Forbidden pairs are matched
// exactly on giver name, giver email and receiver name. The search makes up
// to MaxAttempts attempts and returns the first valid assignment. A strategy
// that reports ErrInfeasible ends the search at once.
//
// The context is checked between attempts; a cancelled context yields a
// failed Result wrapping ctx.Err().
//
// Parameters:
//   - ctx: Context for cancellation
//   - participants: Group members, in caller order
//   - forbidden: Pairings from the previous period (may be nil)
//
// Returns:
//   - Result: Success with one assignment per participant, or failure with Err set
func (g *Generator) Generate(ctx context.Context, participants []Participant, forbidden []ForbiddenPair) Result {
	start := time.Now()

	normalized, err := g.normalize(participants)
	if err != nil {
		code := "unknown"
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			code = string(ve.Code)
		}
		g.metrics.RecordValidationFailure(code)
		g.metrics.RecordGeneration(OutcomeRejected, 0, time.Since(start).Seconds())
		g.logger.Warn("participant list rejected", "code", code, "error", err)

		return types.Failed(err, 0)
	}

	g.metrics.RecordParticipantCount(len(normalized))
	fs := types.NewForbiddenSet(forbidden)

	attempts := 0
	for attempts < MaxAttempts {
		if err := ctx.Err(); err != nil {
			g.metrics.RecordGeneration(OutcomeCanceled, attempts, time.Since(start).Seconds())
			g.logger.Warn("generation canceled", "attempts", attempts, "error", err)

			return types.Failed(fmt.Errorf("generation canceled: %w", err), attempts)
		}

		attempts++
		assignments, err := g.attempt(normalized, fs)
		if err == nil {
			g.metrics.RecordGeneration(OutcomeSucceeded, attempts, time.Since(start).Seconds())
			g.logger.Debug("assignments generated",
				"participants", len(normalized),
				"forbidden", fs.Len(),
				"attempts", attempts)

			return types.Succeeded(assignments, attempts)
		}
		if errors.Is(err, ErrInfeasible) {
			break
		}

		g.logger.Debug("generation attempt failed", "attempt", attempts, "error", err)
	}

	g.metrics.RecordGeneration(OutcomeExhausted, attempts, time.Since(start).Seconds())
	g.logger.Warn("generation exhausted",
		"participants", len(normalized),
		"forbidden", fs.Len(),
		"attempts", attempts)

	return types.Failed(ErrInfeasible, attempts)
}

// normalize applies the duplicate policy, validates and trims.
func (g *Generator) normalize(participants []Participant) ([]Participant, error) {
	if g.policy == DuplicatePolicyCollapse {
		participants = roster.Dedupe(participants)
	}
	if err := roster.Validate(participants); err != nil {
		return nil, err
	}

	return roster.Trim(participants), nil
}

// attempt runs one strategy attempt, converting a strategy panic into an error.
func (g *Generator) attempt(participants []Participant, fs *ForbiddenSet) (assignments []Assignment, err error) {
	defer func() {
		if r := recover(); r != nil {
			assignments = nil
			err = fmt.Errorf("%w: strategy panic: %v", types.ErrAttemptFailed, r)
		}
	}()

	return g.strategy.Assign(participants, fs, g.rng)
}

var defaultGenerator = NewGenerator()

// Generate runs a default Generator without cancellation.
//
// Parameters:
//   - participants: Group members
//   - forbidden: Pairings from the previous period (may be nil)
//
// Returns:
//   - Result: See Generator.Generate
//
// Example:
//
//	res := secretsanta.Generate(participants, nil)
//	if !res.Success {
//	    log.Println(res.ErrorMessage())
//	}
func Generate(participants []Participant, forbidden []ForbiddenPair) Result {
	return defaultGenerator.Generate(context.Background(), participants, forbidden)
}
