package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/zeebo/xxh3"

	"github.com/AjayBarot7035/secret-santa/internal/jsutil"
	"github.com/AjayBarot7035/secret-santa/types"
	"github.com/AjayBarot7035/secret-santa/wire"
)

// hashedKeyPrefix marks keys derived from request IDs that are not valid KV keys.
const hashedKeyPrefix = "h."

// KV is a Store backed by a JetStream KeyValue bucket.
type KV struct {
	kv jetstream.KeyValue
}

var _ Store = (*KV)(nil)

// NewKV opens or creates the results bucket.
//
// Parameters:
//   - ctx: Context for bucket provisioning
//   - js: JetStream context
//   - bucket: Bucket name
//   - ttl: Age after which responses expire (0 keeps them forever)
//
// Returns:
//   - *KV: Store backed by the bucket
//   - error: types.ErrNATSConnectionRequired when js is nil, or the provisioning error
func NewKV(ctx context.Context, js jetstream.JetStream, bucket string, ttl time.Duration) (*KV, error) {
	if js == nil {
		return nil, types.ErrNATSConnectionRequired
	}

	kv, err := jsutil.EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "secret santa assignment results",
		TTL:         ttl,
		History:     1,
	}, jsutil.DefaultMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to open results bucket %s: %w", bucket, err)
	}

	return &KV{kv: kv}, nil
}

// Put implements Store.
func (s *KV) Put(ctx context.Context, requestID string, resp wire.Response) error {
	if requestID == "" {
		return ErrEmptyRequestID
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response %s: %w", requestID, err)
	}

	if _, err := s.kv.Put(ctx, Key(requestID), data); err != nil {
		return fmt.Errorf("failed to store response %s: %w", requestID, err)
	}

	return nil
}

// Get implements Store.
func (s *KV) Get(ctx context.Context, requestID string) (wire.Response, bool, error) {
	if requestID == "" {
		return wire.Response{}, false, ErrEmptyRequestID
	}

	entry, err := s.kv.Get(ctx, Key(requestID))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return wire.Response{}, false, nil
	}
	if err != nil {
		return wire.Response{}, false, fmt.Errorf("failed to load response %s: %w", requestID, err)
	}

	var resp wire.Response
	if err := json.Unmarshal(entry.Value(), &resp); err != nil {
		return wire.Response{}, false, fmt.Errorf("failed to decode response %s: %w", requestID, err)
	}

	return resp, true, nil
}

// Key maps a request ID to its bucket key.
//
// IDs made only of characters KV accepts are used as-is. Anything else
// (spaces, wildcards, leading dots) is replaced by a stable xxh3 digest.
func Key(requestID string) string {
	if validKey(requestID) {
		return requestID
	}

	return hashedKeyPrefix + strconv.FormatUint(xxh3.HashString(requestID), 16)
}

// validKey reports whether s matches JetStream's key rules: [-/_=.a-zA-Z0-9]+
// without a leading or trailing dot.
func validKey(s string) bool {
	if s == "" || s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	// Reserve the hashed namespace so raw IDs cannot collide with digests.
	if len(s) > len(hashedKeyPrefix) && s[:len(hashedKeyPrefix)] == hashedKeyPrefix {
		return false
	}

	for i := range len(s) {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '/', c == '_', c == '=', c == '.':
		default:
			return false
		}
	}

	return true
}
