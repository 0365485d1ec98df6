package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffered(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})

	return NewSlog(slog.New(handler)), buf
}

func TestSlogLogger_Levels(t *testing.T) {
	logger, buf := newBuffered(slog.LevelDebug)

	logger.Debug("attempt failed", "attempt", 1)
	logger.Info("request processed", "request_id", "r-1")
	logger.Warn("redelivering")
	logger.Error("publish failed")

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG msg=\"attempt failed\" attempt=1")
	assert.Contains(t, output, "level=INFO msg=\"request processed\" request_id=r-1")
	assert.Contains(t, output, "level=WARN msg=redelivering")
	assert.Contains(t, output, "level=ERROR msg=\"publish failed\"")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBuffered(slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Empty(t, buf.String())

	logger.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestSlogLogger_With(t *testing.T) {
	logger, buf := newBuffered(slog.LevelInfo)

	child := logger.With("request_id", "r-7", "group", "office")
	child.Info("assignments generated", "participants", 4)
	logger.Info("unscoped")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "request_id=r-7 group=office participants=4")
	assert.NotContains(t, string(lines[1]), "request_id")
}

func TestNewFromConfig(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := NewFromConfig("debug", "json", buf)
		require.NoError(t, err)

		logger.Debug("attempt failed", "attempt", 1)

		output := buf.String()
		assert.Contains(t, output, `"msg":"attempt failed"`)
		assert.Contains(t, output, `"service":"secret-santa"`)
		assert.Contains(t, output, `"attempt":1`)
		assert.Contains(t, output, `"level":"DEBUG"`)
	})

	t.Run("defaults to text at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := NewFromConfig("", "", buf)
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("shown")

		output := buf.String()
		assert.NotContains(t, output, "hidden")
		assert.Contains(t, output, "msg=shown service=secret-santa")
	})

	t.Run("rejects unknown settings", func(t *testing.T) {
		_, err := NewFromConfig("verbose", "text", nil)
		require.Error(t, err)

		_, err = NewFromConfig("info", "xml", nil)
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}
