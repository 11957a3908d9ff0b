package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lending-ledger-backend/pkg/id"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// replay is what the store keeps per idempotency key. While Pending is set
// the first attempt is still running; afterwards Status/Body hold its response.
type replay struct {
	Pending     bool   `json:"pending"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
	Digest      string `json:"digest"`
	RequestAt   int64  `json:"requestAt"`
}

func (r replay) sameBody(digest string) bool { return r.Digest == "" || r.Digest == digest }

func (r replay) done() bool { return !r.Pending && r.Status != 0 }

type replayStore struct {
	rdb  *redis.Client
	lock time.Duration
	keep time.Duration
}

func (s replayStore) claim(ctx context.Context, key string, r replay) (bool, error) {
	r.Pending = true
	payload, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.lock).Result()
}

func (s replayStore) load(ctx context.Context, key string) (replay, error) {
	var r replay
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return replay{}, fmt.Errorf("decode replay %s: %w", key, err)
	}
	return r, nil
}

func (s replayStore) complete(ctx context.Context, key string, r replay) error {
	r.Pending = false
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.keep).Err()
}

func (s replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// replayKey scopes a request id to the caller and the route it was sent to.
func replayKey(userID, method, route, requestID string) string {
	return "idemp:lending:" + userID + ":" + strings.ToLower(method) + ":" + route + ":" + requestID
}

func digest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// validRequestID accepts our own 32-hex ids and canonical lowercase UUIDs.
func validRequestID(raw string) bool {
	if id.Valid(raw) {
		return true
	}
	u, err := uuid.Parse(raw)
	return err == nil && len(raw) == 36 && u.String() == raw
}

var errRequestAt = errors.New(HeaderRequestAt + " must be epoch seconds, epoch milliseconds or RFC3339 with a zone")

// parseRequestAt reads epoch seconds, epoch milliseconds or a zoned RFC3339 stamp.
func parseRequestAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errRequestAt
	}
	return t.UTC(), nil
}
