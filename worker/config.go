package worker

import (
	"errors"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	secretsanta "github.com/AjayBarot7035/secret-santa"
	"github.com/AjayBarot7035/secret-santa/internal/logger"
	"github.com/AjayBarot7035/secret-santa/internal/metrics"
	"github.com/AjayBarot7035/secret-santa/types"
)

// Config configures the worker components.
//
// Zero values are replaced by the Default* constants via applyDefaults().
type Config struct {
	StreamName          string
	RequestSubject      string
	ResultSubjectPrefix string
	ConsumerName        string

	AckWait      time.Duration
	MaxDeliver   int
	MaxWaiting   int
	BatchSize    int
	FetchTimeout time.Duration

	// ProcessTimeout bounds generation and delivery of one message.
	ProcessTimeout time.Duration

	// StreamMaxAge is the stream's MaxAge; set it to the results TTL.
	StreamMaxAge time.Duration

	MaxRetries      int
	RetryBackoff    time.Duration
	RetryBackoffCap time.Duration
	RetryMultiplier float64

	// RetrySeed makes retry jitter deterministic when non-zero (tests).
	RetrySeed int64

	Logger  types.Logger
	Metrics types.WorkerMetrics
}

// ConfigFromNATS maps the service NATS configuration onto a worker Config.
func ConfigFromNATS(n secretsanta.NATSConfig) Config {
	return Config{
		StreamName:          n.Stream,
		RequestSubject:      n.RequestSubject,
		ResultSubjectPrefix: n.ResultSubjectPrefix,
		ConsumerName:        n.ConsumerName,
		AckWait:             n.AckWait,
		FetchTimeout:        n.FetchTimeout,
		StreamMaxAge:        n.ResultsTTL,
	}
}

// applyDefaults fills unset optional fields with project defaults.
func (cfg *Config) applyDefaults() {
	if cfg.StreamName == "" {
		cfg.StreamName = DefaultStreamName
	}
	if cfg.RequestSubject == "" {
		cfg.RequestSubject = DefaultRequestSubject
	}
	if cfg.ResultSubjectPrefix == "" {
		cfg.ResultSubjectPrefix = DefaultResultSubjectPrefix
	}
	if cfg.ConsumerName == "" {
		cfg.ConsumerName = DefaultConsumerName
	}
	if cfg.AckWait == 0 {
		cfg.AckWait = DefaultAckWait
	}
	if cfg.MaxDeliver == 0 {
		cfg.MaxDeliver = DefaultMaxDeliver
	}
	if cfg.MaxWaiting == 0 {
		cfg.MaxWaiting = DefaultMaxWaiting
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.ProcessTimeout == 0 {
		cfg.ProcessTimeout = DefaultProcessTimeout
	}
	if cfg.StreamMaxAge == 0 {
		cfg.StreamMaxAge = DefaultStreamMaxAge
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.RetryBackoffCap == 0 {
		cfg.RetryBackoffCap = DefaultRetryBackoffCap
	}
	if cfg.RetryMultiplier == 0 {
		cfg.RetryMultiplier = DefaultRetryMultiplier
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNop()
	}
}

// validate checks subjects after defaults are applied.
func (cfg *Config) validate() error {
	if strings.ContainsAny(cfg.RequestSubject, "*> \t") {
		return errors.New("request subject must be a literal subject")
	}
	if strings.ContainsAny(cfg.ResultSubjectPrefix, "*> \t") || strings.HasSuffix(cfg.ResultSubjectPrefix, ".") {
		return errors.New("result subject prefix must be a literal subject without trailing dot")
	}
	if strings.HasPrefix(cfg.RequestSubject, cfg.ResultSubjectPrefix+".") {
		return errors.New("request subject must not live under the result subject prefix")
	}

	return nil
}

// ResultSubject returns the subject a request's response is published to.
func (cfg *Config) ResultSubject(requestID string) string {
	return cfg.ResultSubjectPrefix + "." + sanitizeToken(requestID)
}

// StreamConfig returns the stream capturing both requests and results.
func (cfg *Config) StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Description: "secret santa assignment requests and results",
		Subjects:    []string{cfg.RequestSubject, cfg.ResultSubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.StreamMaxAge,
		Duplicates:  2 * time.Minute,
	}
}

// sanitizeToken replaces characters that are invalid in a single subject token
// or consumer name with underscore (_).
//
// Invalid characters:
// - whitespace
// - . (dot), * (asterisk), > (greater than)
// - path separators (/ or \)
// - non-printable characters
func sanitizeToken(name string) string {
	if name == "" {
		return "_"
	}

	var result strings.Builder
	result.Grow(len(name))

	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' ||
			r == '.' || r == '*' || r == '>' ||
			r == '/' || r == '\\' ||
			r < 32 || r == 127 {
			result.WriteRune('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
