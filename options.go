package secretsanta

import (
	"github.com/AjayBarot7035/secret-santa/internal/randutil"
)

// Option configures a Generator with optional dependencies.
type Option func(*generatorOptions)

// generatorOptions holds optional Generator configuration.
type generatorOptions struct {
	strategy AssignmentStrategy
	rng      RandSource
	policy   DuplicatePolicy
	metrics  MetricsCollector
	logger   Logger
}

// WithStrategy sets the assignment strategy used for each attempt.
//
// Parameters:
//   - strategy: AssignmentStrategy implementation (default: strategy.Derangement)
//
// Returns:
//   - Option: Functional option for NewGenerator
//
// Example:
//
//	gen := secretsanta.NewGenerator(secretsanta.WithStrategy(strategy.NewMatching()))
func WithStrategy(strategy AssignmentStrategy) Option {
	return func(o *generatorOptions) {
		o.strategy = strategy
	}
}

// WithRand injects the randomness source.
//
// The source is shared by concurrent Generate calls, so it must be safe for
// concurrent use. A bare *rand.Rand is not.
//
// Parameters:
//   - rng: RandSource implementation
//
// Returns:
//   - Option: Functional option for NewGenerator
func WithRand(rng RandSource) Option {
	return func(o *generatorOptions) {
		o.rng = rng
	}
}

// WithSeed makes the Generator deterministic.
//
// Two Generators built with the same seed produce the same sequence of results
// for the same sequence of inputs.
//
// Parameters:
//   - seed: PCG seed
//
// Returns:
//   - Option: Functional option for NewGenerator
//
// Example:
//
//	gen := secretsanta.NewGenerator(secretsanta.WithSeed(2026))
func WithSeed(seed uint64) Option {
	return func(o *generatorOptions) {
		o.rng = randutil.New(seed)
	}
}

// WithDuplicatePolicy selects how duplicated participants are handled.
//
// Parameters:
//   - policy: DuplicatePolicyReject (default) or DuplicatePolicyCollapse
//
// Returns:
//   - Option: Functional option for NewGenerator
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(o *generatorOptions) {
		o.policy = policy
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewGenerator
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "secret_santa")
//	gen := secretsanta.NewGenerator(secretsanta.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *generatorOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (nil keeps the no-op logger)
//
// Returns:
//   - Option: Functional option for NewGenerator
//
// Example:
//
//	logger, err := logging.NewFromConfig("debug", "json", os.Stderr)
//	if err != nil {
//	    return err
//	}
//	gen := secretsanta.NewGenerator(secretsanta.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *generatorOptions) {
		o.logger = logger
	}
}
