package secretsanta

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AjayBarot7035/secret-santa/internal/logging"
	"github.com/AjayBarot7035/secret-santa/strategy"
)

// GeneratorConfig selects the assignment algorithm and its inputs.
type GeneratorConfig struct {
	// DuplicatePolicy is "reject" (default) or "collapse".
	DuplicatePolicy string `yaml:"duplicatePolicy"`

	// Strategy is "derangement" (default) or "matching".
	Strategy string `yaml:"strategy"`

	// Seed makes generation deterministic when non-empty.
	// Any string is accepted; it is hashed into a 64-bit seed.
	Seed string `yaml:"seed"`
}

// HTTPConfig configures the HTTP API.
type HTTPConfig struct {
	// Addr is the listen address (e.g., ":8080").
	Addr string `yaml:"addr"`

	// RequestTimeout bounds the handling time of a single request.
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// NATSConfig configures the JetStream request/response pipeline.
type NATSConfig struct {
	// URL is the NATS server URL.
	URL string `yaml:"url"`

	// Stream is the JetStream stream holding generation requests.
	Stream string `yaml:"stream"`

	// RequestSubject is the subject requests are published to.
	RequestSubject string `yaml:"requestSubject"`

	// ResultSubjectPrefix prefixes the per-request result subject (<prefix>.<request_id>).
	ResultSubjectPrefix string `yaml:"resultSubjectPrefix"`

	// ConsumerName is the durable consumer name shared by all workers.
	ConsumerName string `yaml:"consumerName"`

	// ResultsBucket is the KV bucket storing responses for status checks.
	ResultsBucket string `yaml:"resultsBucket"`

	// ResultsTTL is how long stored responses remain available (0 = no expiration).
	ResultsTTL time.Duration `yaml:"resultsTtl"`

	// FetchTimeout bounds one pull request from the consumer.
	FetchTimeout time.Duration `yaml:"fetchTimeout"`

	// AckWait is how long JetStream waits for an ACK before redelivering.
	AckWait time.Duration `yaml:"ackWait"`
}

// HistoryConfig configures the assignment history database.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `yaml:"path"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled exposes metrics at /metrics.
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`
}

// Config is the service configuration.
//
// Load it with LoadConfig, or start from DefaultConfig and override fields.
// Durations use Go syntax in YAML (e.g., "30s", "24h").
type Config struct {
	// DevMode serves generation synchronously without NATS.
	DevMode bool `yaml:"devMode"`

	Generator GeneratorConfig `yaml:"generator"`
	HTTP      HTTPConfig      `yaml:"http"`
	NATS      NATSConfig      `yaml:"nats"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DefaultConfig returns production defaults.
//
// Returns:
//   - Config: Configuration with every field populated
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			DuplicatePolicy: DuplicatePolicyReject.String(),
			Strategy:        strategy.NameDerangement,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			RequestTimeout: 10 * time.Second,
		},
		NATS: NATSConfig{
			URL:                 "nats://127.0.0.1:4222",
			Stream:              "SECRET_SANTA",
			RequestSubject:      "santa.requests",
			ResultSubjectPrefix: "santa.results",
			ConsumerName:        "secret-santa-worker",
			ResultsBucket:       "secret-santa-results",
			ResultsTTL:          24 * time.Hour,
			FetchTimeout:        5 * time.Second,
			AckWait:             30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "secret_santa",
		},
	}
}

// TestConfig returns a configuration with short timeouts for tests.
//
// Returns:
//   - Config: Test-friendly configuration
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.DevMode = true
	cfg.Generator.Seed = "test"
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.RequestTimeout = 2 * time.Second
	cfg.NATS.ResultsTTL = time.Minute
	cfg.NATS.FetchTimeout = 200 * time.Millisecond
	cfg.NATS.AckWait = 2 * time.Second
	cfg.Log.Level = "debug"
	cfg.Metrics.Enabled = false

	return cfg
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Booleans are left untouched since false is a valid setting.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	setString(&cfg.Generator.DuplicatePolicy, defaults.Generator.DuplicatePolicy)
	setString(&cfg.Generator.Strategy, defaults.Generator.Strategy)

	setString(&cfg.HTTP.Addr, defaults.HTTP.Addr)
	setDuration(&cfg.HTTP.RequestTimeout, defaults.HTTP.RequestTimeout)

	setString(&cfg.NATS.URL, defaults.NATS.URL)
	setString(&cfg.NATS.Stream, defaults.NATS.Stream)
	setString(&cfg.NATS.RequestSubject, defaults.NATS.RequestSubject)
	setString(&cfg.NATS.ResultSubjectPrefix, defaults.NATS.ResultSubjectPrefix)
	setString(&cfg.NATS.ConsumerName, defaults.NATS.ConsumerName)
	setString(&cfg.NATS.ResultsBucket, defaults.NATS.ResultsBucket)
	setDuration(&cfg.NATS.FetchTimeout, defaults.NATS.FetchTimeout)
	setDuration(&cfg.NATS.AckWait, defaults.NATS.AckWait)

	setString(&cfg.Log.Level, defaults.Log.Level)
	setString(&cfg.Log.Format, defaults.Log.Format)
	setString(&cfg.Metrics.Namespace, defaults.Metrics.Namespace)
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setDuration(dst *time.Duration, def time.Duration) {
	if *dst == 0 {
		*dst = def
	}
}

// Validate checks configuration constraints.
//
// Rules:
//   - Strategy and duplicate policy are known names
//   - Log level and format are known names
//   - HTTP.Addr is set and HTTP.RequestTimeout > 0
//   - Outside dev mode, every NATS name is set and NATS timeouts are > 0
//   - NATS.ResultsTTL >= 0
//
// Returns:
//   - error: ErrInvalidConfig wrapping the first violation, nil if valid
func (cfg *Config) Validate() error {
	if _, err := strategy.ByName(cfg.Generator.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseDuplicatePolicy(cfg.Generator.DuplicatePolicy); err != nil {
		return err
	}
	if _, err := logging.NewFromConfig(cfg.Log.Level, cfg.Log.Format, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.HTTP.Addr == "" {
		return fmt.Errorf("%w: http.addr is required", ErrInvalidConfig)
	}
	if cfg.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("%w: http.requestTimeout must be > 0, got %v", ErrInvalidConfig, cfg.HTTP.RequestTimeout)
	}

	if cfg.NATS.ResultsTTL < 0 {
		return fmt.Errorf("%w: nats.resultsTtl must be >= 0, got %v", ErrInvalidConfig, cfg.NATS.ResultsTTL)
	}
	if cfg.DevMode {
		return nil
	}

	for _, f := range []struct{ key, value string }{
		{"nats.url", cfg.NATS.URL},
		{"nats.stream", cfg.NATS.Stream},
		{"nats.requestSubject", cfg.NATS.RequestSubject},
		{"nats.resultSubjectPrefix", cfg.NATS.ResultSubjectPrefix},
		{"nats.consumerName", cfg.NATS.ConsumerName},
		{"nats.resultsBucket", cfg.NATS.ResultsBucket},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, f.key)
		}
	}
	if cfg.NATS.FetchTimeout <= 0 {
		return fmt.Errorf("%w: nats.fetchTimeout must be > 0, got %v", ErrInvalidConfig, cfg.NATS.FetchTimeout)
	}
	if cfg.NATS.AckWait <= 0 {
		return fmt.Errorf("%w: nats.ackWait must be > 0, got %v", ErrInvalidConfig, cfg.NATS.AckWait)
	}

	return nil
}

// ApplyEnv overrides configuration from environment variables.
//
// Recognized variables:
//   - PORT: HTTP listen port (sets http.addr to ":<PORT>")
//   - NATS_URL: NATS server URL
//   - DEV_MODE: Boolean, enables synchronous mode without NATS
//   - LOG_LEVEL: Log level
//   - HISTORY_DB: SQLite history path
//   - SECRET_SANTA_SEED: Deterministic generator seed
//
// Parameters:
//   - lookup: Variable lookup (os.LookupEnv in production)
//
// Returns:
//   - error: ErrInvalidConfig for a malformed value
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return fmt.Errorf("%w: PORT %q is not a port number", ErrInvalidConfig, v)
		}
		cfg.HTTP.Addr = ":" + v
	}
	if v, ok := lookup("NATS_URL"); ok && v != "" {
		cfg.NATS.URL = v
	}
	if v, ok := lookup("DEV_MODE"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: DEV_MODE %q is not a boolean", ErrInvalidConfig, v)
		}
		cfg.DevMode = dev
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("HISTORY_DB"); ok {
		cfg.History.Path = v
	}
	if v, ok := lookup("SECRET_SANTA_SEED"); ok {
		cfg.Generator.Seed = v
	}

	return nil
}

// LoadConfig reads a YAML configuration file.
//
// Fields absent from the file keep their DefaultConfig values. Environment
// overrides are not applied; call ApplyEnv afterwards.
//
// Parameters:
//   - path: YAML file path; empty returns DefaultConfig
//
// Returns:
//   - Config: Loaded configuration (not yet validated)
//   - error: Read or parse failure
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
	}
	SetDefaults(&cfg)

	return cfg, nil
}
