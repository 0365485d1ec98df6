package secretsanta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "reject", cfg.Generator.DuplicatePolicy)
	require.Equal(t, "derangement", cfg.Generator.Strategy)
	require.Empty(t, cfg.Generator.Seed)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, "SECRET_SANTA", cfg.NATS.Stream)
	require.Equal(t, "santa.requests", cfg.NATS.RequestSubject)
	require.Equal(t, "santa.results", cfg.NATS.ResultSubjectPrefix)
	require.Equal(t, 24*time.Hour, cfg.NATS.ResultsTTL)
	require.True(t, cfg.Metrics.Enabled)
	require.False(t, cfg.DevMode)
	require.NoError(t, cfg.Validate())
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	require.True(t, cfg.DevMode)
	require.Equal(t, "test", cfg.Generator.Seed)
	require.Less(t, cfg.NATS.FetchTimeout, DefaultConfig().NATS.FetchTimeout)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies all defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		defaults := DefaultConfig()
		require.Equal(t, defaults.Generator.Strategy, cfg.Generator.Strategy)
		require.Equal(t, defaults.HTTP, cfg.HTTP)
		require.Equal(t, defaults.NATS.AckWait, cfg.NATS.AckWait)
		require.Equal(t, defaults.Log, cfg.Log)
		// ResultsTTL zero means no expiration and is kept
		require.Zero(t, cfg.NATS.ResultsTTL)
	})

	t.Run("applies partial defaults", func(t *testing.T) {
		cfg := Config{
			Generator: GeneratorConfig{Strategy: "matching"},
			HTTP:      HTTPConfig{Addr: ":9090"},
		}
		SetDefaults(&cfg)

		// Custom values preserved
		require.Equal(t, "matching", cfg.Generator.Strategy)
		require.Equal(t, ":9090", cfg.HTTP.Addr)
		// Defaults applied
		require.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
		require.Equal(t, "reject", cfg.Generator.DuplicatePolicy)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown strategy", func(c *Config) { c.Generator.Strategy = "greedy" }, "greedy"},
		{"unknown policy", func(c *Config) { c.Generator.DuplicatePolicy = "merge" }, "merge"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "loud"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "xml"},
		{"missing addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr"},
		{"zero request timeout", func(c *Config) { c.HTTP.RequestTimeout = 0 }, "http.requestTimeout"},
		{"negative results ttl", func(c *Config) { c.NATS.ResultsTTL = -time.Second }, "nats.resultsTtl"},
		{"missing stream", func(c *Config) { c.NATS.Stream = " " }, "nats.stream"},
		{"missing bucket", func(c *Config) { c.NATS.ResultsBucket = "" }, "nats.resultsBucket"},
		{"zero ack wait", func(c *Config) { c.NATS.AckWait = 0 }, "nats.ackWait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("dev mode skips NATS checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DevMode = true
		cfg.NATS.Stream = ""
		cfg.NATS.AckWait = 0

		require.NoError(t, cfg.Validate())
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		}
	}

	t.Run("overrides recognized variables", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.ApplyEnv(env(map[string]string{
			"PORT":              "3000",
			"NATS_URL":          "nats://queue:4222",
			"DEV_MODE":          "true",
			"LOG_LEVEL":         "debug",
			"HISTORY_DB":        "/var/lib/santa.db",
			"SECRET_SANTA_SEED": "xmas-2026",
		}))
		require.NoError(t, err)

		require.Equal(t, ":3000", cfg.HTTP.Addr)
		require.Equal(t, "nats://queue:4222", cfg.NATS.URL)
		require.True(t, cfg.DevMode)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "/var/lib/santa.db", cfg.History.Path)
		require.Equal(t, "xmas-2026", cfg.Generator.Seed)
	})

	t.Run("leaves config untouched without variables", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(env(nil)))
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		cfg := DefaultConfig()
		require.ErrorIs(t, cfg.ApplyEnv(env(map[string]string{"PORT": "http"})), ErrInvalidConfig)
		require.ErrorIs(t, cfg.ApplyEnv(env(map[string]string{"DEV_MODE": "sometimes"})), ErrInvalidConfig)
	})
}

// TestConfig_YAML demonstrates that time.Duration works directly with YAML unmarshaling
func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
devMode: true
generator:
  duplicatePolicy: collapse
  strategy: matching
  seed: office-2026
http:
  addr: ":9000"
  requestTimeout: 3s
nats:
  url: nats://nats:4222
  resultsTtl: 1h
  fetchTimeout: 2s
history:
  path: ./history.db
log:
  level: warn
  format: json
metrics:
  enabled: false
`

	var cfg Config
	err := yaml.Unmarshal([]byte(yamlConfig), &cfg)
	require.NoError(t, err)

	require.True(t, cfg.DevMode)
	require.Equal(t, "collapse", cfg.Generator.DuplicatePolicy)
	require.Equal(t, "matching", cfg.Generator.Strategy)
	require.Equal(t, "office-2026", cfg.Generator.Seed)
	require.Equal(t, ":9000", cfg.HTTP.Addr)
	require.Equal(t, 3*time.Second, cfg.HTTP.RequestTimeout)
	require.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	require.Equal(t, time.Hour, cfg.NATS.ResultsTTL)
	require.Equal(t, 2*time.Second, cfg.NATS.FetchTimeout)
	require.Equal(t, "./history.db", cfg.History.Path)
	require.Equal(t, LogConfig{Level: "warn", Format: "json"}, cfg.Log)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":7070\"\nmetrics:\n  namespace: office\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, ":7070", cfg.HTTP.Addr)
		require.Equal(t, "office", cfg.Metrics.Namespace)
		require.True(t, cfg.Metrics.Enabled)
		require.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
		require.Equal(t, "santa.requests", cfg.NATS.RequestSubject)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
