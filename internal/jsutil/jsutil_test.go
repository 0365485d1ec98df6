package jsutil

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	santatest "github.com/AjayBarot7035/secret-santa/testing"
)

func TestEnsureKVBucketWithRetry(t *testing.T) {
	_, nc := santatest.StartEmbeddedNATS(t)
	js := santatest.JetStream(t, nc)
	ctx := context.Background()

	t.Run("successful creation on first try", func(t *testing.T) {
		kv, err := EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
			Bucket: "results-1",
			TTL:    5 * time.Second,
		}, 3)
		require.NoError(t, err)
		require.Equal(t, "results-1", kv.Bucket())
	})

	t.Run("bucket exists - should open it", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{Bucket: "results-2", History: 1}

		_, err := js.CreateKeyValue(ctx, cfg)
		require.NoError(t, err)

		kv, err := EnsureKVBucketWithRetry(ctx, js, cfg, 3)
		require.NoError(t, err)
		require.NotNil(t, kv)
	})

	t.Run("concurrent creates - 10 replicas", func(t *testing.T) {
		cfg := jetstream.KeyValueConfig{Bucket: "results-3", History: 1}

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := EnsureKVBucketWithRetry(ctx, js, cfg, 5); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
	})

	t.Run("context timeout - should fail gracefully", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-shortCtx.Done()

		_, err := EnsureKVBucketWithRetry(shortCtx, js, jetstream.KeyValueConfig{Bucket: "results-4"}, 3)
		require.Error(t, err)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestEnsureStreamWithRetry(t *testing.T) {
	_, nc := santatest.StartEmbeddedNATS(t)
	js := santatest.JetStream(t, nc)
	ctx := context.Background()

	cfg := jetstream.StreamConfig{
		Name:     "SECRET_SANTA",
		Subjects: []string{"santa.requests"},
		Storage:  jetstream.MemoryStorage,
	}

	stream, err := EnsureStreamWithRetry(ctx, js, cfg, 3)
	require.NoError(t, err)
	require.Equal(t, "SECRET_SANTA", stream.CachedInfo().Config.Name)

	// Updating with extra subjects converges on the new config
	cfg.Subjects = append(cfg.Subjects, "santa.results.>")
	stream, err = EnsureStreamWithRetry(ctx, js, cfg, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"santa.requests", "santa.results.>"}, stream.CachedInfo().Config.Subjects)
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		v, err := retry(context.Background(), 3, "op", func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}

			return 42, nil
		})
		require.NoError(t, err)
		require.Equal(t, 42, v)
		require.Equal(t, 3, calls)
	})

	t.Run("reports last error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := retry(context.Background(), 2, "op", func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
		require.ErrorContains(t, err, "op failed after 2 attempts")
	})

	t.Run("defaults retries", func(t *testing.T) {
		calls := 0
		_, _ = retry(context.Background(), 0, "op", func() (int, error) {
			calls++
			return 0, errors.New("fail")
		})
		require.Equal(t, DefaultMaxRetries, calls)
	})
}
